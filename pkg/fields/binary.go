package fields

import (
	"reflect"

	"github.com/deepankarm/docfields/pkg/internal/reflectutil"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// BinaryField stores raw bytes as BSON generic binary data.
type BinaryField struct {
	Base
	maxBytes int // -1 when unset
}

// BinaryOption configures a BinaryField.
type BinaryOption interface {
	applyBinary(*BinaryField)
}

type binaryOption func(*BinaryField)

func (o binaryOption) applyBinary(f *BinaryField) { o(f) }

// Binary creates a byte field.
func Binary(opts ...BinaryOption) *BinaryField {
	f := &BinaryField{maxBytes: -1}
	f.setConstraint(ConstraintContentEncoding, "base64")
	for _, opt := range opts {
		opt.applyBinary(f)
	}
	return f
}

// MaxBytes rejects values longer than n bytes.
func MaxBytes(n int) BinaryOption {
	return binaryOption(func(f *BinaryField) {
		if n < 0 {
			f.fail(negativeBound(ConstraintMaxLength))
			return
		}
		f.maxBytes = n
		f.setConstraint(ConstraintMaxLength, n)
	})
}

// Kind returns KindBinary.
func (f *BinaryField) Kind() string {
	return KindBinary
}

// Validate accepts absent values and byte slices within MaxBytes.
func (f *BinaryField) Validate(value any) (bool, error) {
	if reflectutil.IsAbsent(value) {
		return true, nil
	}
	if err := f.Check(); err != nil {
		return false, err
	}
	b, ok := toBytes(value)
	if !ok {
		return false, nil
	}
	return f.maxBytes < 0 || len(b) <= f.maxBytes, nil
}

// IsEmpty also treats zero-length data as empty.
func (f *BinaryField) IsEmpty(value any) bool {
	if reflectutil.IsAbsent(value) {
		return true
	}
	b, ok := toBytes(value)
	return ok && len(b) == 0
}

// ToStore wraps the bytes in bson.Binary.
func (f *BinaryField) ToStore(value any) (any, error) {
	if reflectutil.IsAbsent(value) {
		return nil, nil
	}
	b, ok := toBytes(value)
	if !ok {
		return nil, &StoreError{Kind: KindBinary, Value: value}
	}
	return bson.Binary{Subtype: 0x00, Data: b}, nil
}

// FromStore unwraps stored binary data.
func (f *BinaryField) FromStore(value any) (any, error) {
	if reflectutil.IsAbsent(value) {
		return nil, nil
	}
	if bin, ok := value.(bson.Binary); ok {
		return bin.Data, nil
	}
	b, ok := toBytes(value)
	if !ok {
		return nil, &StoreError{Kind: KindBinary, Value: value}
	}
	return b, nil
}

func toBytes(value any) ([]byte, bool) {
	if b, ok := value.([]byte); ok {
		return b, true
	}
	rv := reflectutil.Indirect(value)
	if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() != reflect.Uint8 {
		return nil, false
	}
	return rv.Bytes(), true
}
