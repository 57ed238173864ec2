package flags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList(t *testing.T) {
	l := NewList(" kafka-1:9092, ,kafka-2:9092 ")
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, *l.Value)
	assert.Equal(t, "[kafka-1:9092,kafka-2:9092]", l.String())

	assert.NoError(t, l.Set("kafka-3:9092"))
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092", "kafka-3:9092"}, *l.Value)

	assert.NoError(t, l.Set(""))
	assert.Empty(t, *l.Value)
	assert.Equal(t, "stringSlice", l.Type())
}
