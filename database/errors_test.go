package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestWriteError(t *testing.T) {
	assert.NoError(t, WriteError("insert", nil))

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}
	err := WriteError("insert service", dup)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	plain := errors.New("connection reset")
	err = WriteError("insert service", plain)
	assert.ErrorIs(t, err, plain)
	assert.False(t, errors.Is(err, ErrDuplicateKey))
}
