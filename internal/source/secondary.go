package source

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/osse101/userreconcile/internal/domain"
)

// SecondarySource yields every secondary user one document at a time.
type SecondarySource interface {
	EachUser(ctx context.Context, fn func(domain.SecondaryUser) error) error
	Describe() string
}

// MongoSecondary reads the user collection of the document store.
type MongoSecondary struct {
	coll *mongo.Collection
	desc string
}

func NewMongoSecondary(coll *mongo.Collection, desc string) *MongoSecondary {
	return &MongoSecondary{coll: coll, desc: desc}
}

func (s *MongoSecondary) Describe() string {
	return s.desc
}

// EachUser scans the whole collection. Any undecodable document stops the scan.
func (s *MongoSecondary) EachUser(ctx context.Context, fn func(domain.SecondaryUser) error) error {
	projection := bson.D{
		{Key: FieldExternalID, Value: 1},
		{Key: FieldUsername, Value: 1},
		{Key: FieldEmail, Value: 1},
		{Key: FieldReadStates, Value: 1},
	}

	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetProjection(projection))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToQueryUsers, err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		u, err := DecodeSecondary(cur.Current)
		if err != nil {
			return err
		}
		if err := fn(u); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgCallbackFailed, err)
		}
	}
	if err := cur.Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToQueryUsers, err)
	}
	return nil
}

// DecodeSecondary converts one projected document. A missing or null
// username or email stays nil; a missing read_states counts as no activity.
func DecodeSecondary(doc bson.Raw) (domain.SecondaryUser, error) {
	var (
		u   domain.SecondaryUser
		err error
	)
	docID := describeValue(doc.Lookup("_id"))

	if u.ExternalID, err = ExternalID(doc.Lookup(FieldExternalID)); err != nil {
		return domain.SecondaryUser{}, fmt.Errorf("%w (_id=%s)", err, docID)
	}
	if u.Username, err = optionalString(doc.Lookup(FieldUsername)); err != nil {
		return domain.SecondaryUser{}, fmt.Errorf("%s %s (_id=%s): %w", ErrMsgFailedToDecodeUser, FieldUsername, docID, err)
	}
	if u.Email, err = optionalString(doc.Lookup(FieldEmail)); err != nil {
		return domain.SecondaryUser{}, fmt.Errorf("%s %s (_id=%s): %w", ErrMsgFailedToDecodeUser, FieldEmail, docID, err)
	}
	if u.ActivityCount, err = activityCount(doc.Lookup(FieldReadStates)); err != nil {
		return domain.SecondaryUser{}, fmt.Errorf("%s (_id=%s): %w", ErrMsgFailedToDecodeUser, docID, err)
	}
	return u, nil
}

// ExternalID accepts the integral encodings the collection has been seen to
// hold: int32, int64, whole doubles and decimal strings.
func ExternalID(rv bson.RawValue) (int64, error) {
	switch rv.Type {
	case bson.TypeInt32:
		return int64(rv.Int32()), nil
	case bson.TypeInt64:
		return rv.Int64(), nil
	case bson.TypeDouble:
		f := rv.Double()
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return int64(f), nil
		}
	case bson.TypeString:
		if n, err := strconv.ParseInt(strings.TrimSpace(rv.StringValue()), 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", domain.ErrInvalidExternalID, describeValue(rv))
}

func optionalString(rv bson.RawValue) (*string, error) {
	switch rv.Type {
	case 0, bson.TypeNull, bson.TypeUndefined:
		return nil, nil
	case bson.TypeString:
		s := rv.StringValue()
		return &s, nil
	default:
		return nil, fmt.Errorf("unexpected %s", rv.Type)
	}
}

func activityCount(rv bson.RawValue) (int64, error) {
	switch rv.Type {
	case 0, bson.TypeNull:
		return 0, nil
	case bson.TypeArray:
		values, err := rv.Array().Values()
		if err != nil {
			return 0, err
		}
		return int64(len(values)), nil
	default:
		return 0, fmt.Errorf("%s: %s", ErrMsgInvalidReadStates, rv.Type)
	}
}

func describeValue(rv bson.RawValue) string {
	if rv.Type == 0 {
		return "missing"
	}
	return fmt.Sprintf("%s %s", rv.Type, rv.String())
}
