package source

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/osse101/userreconcile/internal/domain"
)

func rawDoc(t *testing.T, doc bson.D) bson.Raw {
	t.Helper()
	b, err := bson.Marshal(doc)
	require.NoError(t, err)
	return bson.Raw(b)
}

func TestExternalID(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    int64
		wantErr bool
	}{
		{"int32", int32(42), 42, false},
		{"int64", int64(1) << 40, 1 << 40, false},
		{"whole double", float64(17), 17, false},
		{"decimal string", "1234", 1234, false},
		{"padded string", " 99 ", 99, false},
		{"fractional double", 1.5, 0, true},
		{"nan", math.NaN(), 0, true},
		{"non-numeric string", "abc", 0, true},
		{"boolean", true, 0, true},
		{"null", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := rawDoc(t, bson.D{{Key: FieldExternalID, Value: tt.value}})

			got, err := ExternalID(doc.Lookup(FieldExternalID))

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidExternalID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExternalID_Missing(t *testing.T) {
	doc := rawDoc(t, bson.D{{Key: FieldUsername, Value: "alice"}})

	_, err := ExternalID(doc.Lookup(FieldExternalID))

	assert.ErrorIs(t, err, domain.ErrInvalidExternalID)
	assert.ErrorContains(t, err, "missing")
}

func TestDecodeSecondary(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		doc := rawDoc(t, bson.D{
			{Key: "_id", Value: "1"},
			{Key: FieldExternalID, Value: "1"},
			{Key: FieldUsername, Value: "alice"},
			{Key: FieldEmail, Value: "a@x.com"},
			{Key: FieldReadStates, Value: bson.A{bson.D{{Key: "course_id", Value: "c1"}}, bson.D{{Key: "course_id", Value: "c2"}}}},
		})

		u, err := DecodeSecondary(doc)

		require.NoError(t, err)
		assert.Equal(t, domain.SecondaryUser{ExternalID: 1, Username: strPtr("alice"), Email: strPtr("a@x.com"), ActivityCount: 2}, u)
	})

	t.Run("missing read_states counts as no activity", func(t *testing.T) {
		doc := rawDoc(t, bson.D{
			{Key: FieldExternalID, Value: int32(2)},
			{Key: FieldUsername, Value: "bob"},
			{Key: FieldEmail, Value: "b@x.com"},
		})

		u, err := DecodeSecondary(doc)

		require.NoError(t, err)
		assert.Zero(t, u.ActivityCount)
		assert.True(t, u.SafeToDelete())
	})

	t.Run("null username and missing email stay nil", func(t *testing.T) {
		doc := rawDoc(t, bson.D{
			{Key: FieldExternalID, Value: int64(3)},
			{Key: FieldUsername, Value: nil},
			{Key: FieldReadStates, Value: bson.A{}},
		})

		u, err := DecodeSecondary(doc)

		require.NoError(t, err)
		assert.Equal(t, domain.SecondaryUser{ExternalID: 3}, u)
	})

	t.Run("empty strings are kept apart from missing values", func(t *testing.T) {
		doc := rawDoc(t, bson.D{
			{Key: FieldExternalID, Value: int32(6)},
			{Key: FieldUsername, Value: ""},
			{Key: FieldEmail, Value: nil},
		})

		u, err := DecodeSecondary(doc)

		require.NoError(t, err)
		require.NotNil(t, u.Username)
		assert.Equal(t, "", *u.Username)
		assert.Nil(t, u.Email)
	})

	t.Run("bad external_id reports the document", func(t *testing.T) {
		doc := rawDoc(t, bson.D{
			{Key: "_id", Value: "abc"},
			{Key: FieldExternalID, Value: "not-a-number"},
		})

		_, err := DecodeSecondary(doc)

		assert.ErrorIs(t, err, domain.ErrInvalidExternalID)
		assert.ErrorContains(t, err, "_id=")
	})

	t.Run("read_states of the wrong type", func(t *testing.T) {
		doc := rawDoc(t, bson.D{
			{Key: FieldExternalID, Value: int32(4)},
			{Key: FieldReadStates, Value: "nope"},
		})

		_, err := DecodeSecondary(doc)

		assert.ErrorContains(t, err, ErrMsgInvalidReadStates)
	})

	t.Run("username of the wrong type", func(t *testing.T) {
		doc := rawDoc(t, bson.D{
			{Key: FieldExternalID, Value: int32(5)},
			{Key: FieldUsername, Value: int32(12)},
		})

		_, err := DecodeSecondary(doc)

		assert.ErrorContains(t, err, ErrMsgFailedToDecodeUser)
	})
}
