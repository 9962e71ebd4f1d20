package serviceRepo

import (
	"errors"
	"fmt"
	"testing"

	"pestcontrol/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestPublicFilter(t *testing.T) {
	featured := true
	tests := []struct {
		name   string
		filter models.ServiceFilter
		want   bson.M
	}{
		{
			name:   "visibility only",
			filter: models.ServiceFilter{},
			want:   bson.M{"status": "active", "isDeleted": false},
		},
		{
			name:   "service type and featured",
			filter: models.ServiceFilter{ServiceType: "Termite Control", Featured: &featured},
			want:   bson.M{"status": "active", "isDeleted": false, "serviceType": "Termite Control", "featured": true},
		},
		{
			name:   "search",
			filter: models.ServiceFilter{Search: "cockroach"},
			want:   bson.M{"status": "active", "isDeleted": false, "$text": bson.M{"$search": "cockroach"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublicFilter(tt.filter))
		})
	}
}

func TestPublicSortOrder(t *testing.T) {
	assert.Equal(t, "featured", PublicSort[0].Key)
	assert.Equal(t, -1, PublicSort[0].Value)
	assert.Equal(t, "createdAt", PublicSort[1].Key)
	assert.Equal(t, -1, PublicSort[1].Value)
}

func TestPublicProjectionHidesInternalFields(t *testing.T) {
	assert.Equal(t, 0, PublicProjection["isDeleted"])
	assert.Equal(t, 0, PublicProjection["_id"])
}

func TestReserveOutcome(t *testing.T) {
	network := errors.New("connection reset")
	tests := []struct {
		name    string
		err     error
		want    bool
		wantErr bool
	}{
		{name: "counter incremented", err: nil, want: true},
		{name: "counter created by upsert", err: mongo.ErrNoDocuments, want: true},
		{name: "wrapped no documents", err: fmt.Errorf("find: %w", mongo.ErrNoDocuments), want: true},
		{
			name: "ceiling reached as write error",
			err:  mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}},
			want: false,
		},
		{name: "ceiling reached as command error", err: mongo.CommandError{Code: 11000, Message: "E11000 duplicate key"}, want: false},
		{name: "other failure", err: network, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reserveOutcome(tt.err)
			if tt.wantErr {
				assert.ErrorIs(t, err, network)
				assert.False(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCounterAtVersion(t *testing.T) {
	assert.Equal(t, bson.M{"_id": "featured", "version": int64(4)}, counterAtVersion(4))
	assert.Equal(t, bson.M{"_id": "featured", "version": bson.M{"$in": bson.A{0, nil}}}, counterAtVersion(0))
}
