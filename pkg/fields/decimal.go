package fields

import (
	"math"
	"math/big"
	"strconv"

	"github.com/deepankarm/docfields/pkg/internal/reflectutil"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// DecimalField stores exact decimal numbers as BSON Decimal128.
//
// Accepted values are bson.Decimal128, decimal text such as "12.50", and Go
// integer or finite float kinds. NaN and infinities are rejected.
type DecimalField struct {
	Base
	min, max *big.Rat
}

// DecimalOption configures a DecimalField.
type DecimalOption interface {
	applyDecimal(*DecimalField)
}

type decimalOption func(*DecimalField)

func (o decimalOption) applyDecimal(f *DecimalField) { o(f) }

// Decimal creates a decimal field.
func Decimal(opts ...DecimalOption) *DecimalField {
	f := &DecimalField{}
	for _, opt := range opts {
		opt.applyDecimal(f)
	}
	return f
}

// MinDecimal rejects values below the decimal text bound.
func MinDecimal(bound string) DecimalOption {
	return decimalOption(func(f *DecimalField) {
		f.min = f.parseBound(ConstraintMinimum, bound)
	})
}

// MaxDecimal rejects values above the decimal text bound.
func MaxDecimal(bound string) DecimalOption {
	return decimalOption(func(f *DecimalField) {
		f.max = f.parseBound(ConstraintMaximum, bound)
	})
}

func (f *DecimalField) parseBound(option, bound string) *big.Rat {
	d, err := bson.ParseDecimal128(bound)
	if err != nil {
		f.fail(&ConfigError{Option: option, Msg: "Invalid decimal: " + err.Error(), Err: err})
		return nil
	}
	r, ok := decimalRat(d)
	if !ok {
		f.fail(&ConfigError{Option: option, Msg: "Invalid decimal: " + bound + " is not finite"})
		return nil
	}
	f.setConstraint(option, bound)
	return r
}

// Kind returns KindDecimal.
func (f *DecimalField) Kind() string {
	return KindDecimal
}

// Validate accepts absent values and finite decimals within the bounds.
func (f *DecimalField) Validate(value any) (bool, error) {
	if reflectutil.IsAbsent(value) {
		return true, nil
	}
	if err := f.Check(); err != nil {
		return false, err
	}
	d, ok := toDecimal128(value)
	if !ok {
		return false, nil
	}
	r, ok := decimalRat(d)
	if !ok {
		return false, nil
	}
	if f.min != nil && r.Cmp(f.min) < 0 {
		return false, nil
	}
	if f.max != nil && r.Cmp(f.max) > 0 {
		return false, nil
	}
	return true, nil
}

// ToStore converts the value to bson.Decimal128.
func (f *DecimalField) ToStore(value any) (any, error) {
	if reflectutil.IsAbsent(value) {
		return nil, nil
	}
	d, ok := toDecimal128(value)
	if !ok {
		return nil, &StoreError{Kind: KindDecimal, Value: value}
	}
	return d, nil
}

// FromStore returns the stored bson.Decimal128.
func (f *DecimalField) FromStore(value any) (any, error) {
	return f.ToStore(value)
}

func toDecimal128(value any) (bson.Decimal128, bool) {
	switch v := value.(type) {
	case bson.Decimal128:
		return v, true
	case *bson.Decimal128:
		return *v, true
	}
	if s, ok := reflectutil.StringValue(value); ok {
		d, err := bson.ParseDecimal128(s)
		return d, err == nil
	}
	if n, ok := reflectutil.Int64Value(value); ok {
		d, err := bson.ParseDecimal128(strconv.FormatInt(n, 10))
		return d, err == nil
	}
	rv := reflectutil.Indirect(value)
	if rv.IsValid() && reflectutil.IsFloatKind(rv.Kind()) {
		fv := rv.Float()
		if math.IsNaN(fv) || math.IsInf(fv, 0) {
			return bson.Decimal128{}, false
		}
		d, err := bson.ParseDecimal128(strconv.FormatFloat(fv, 'g', -1, 64))
		return d, err == nil
	}
	return bson.Decimal128{}, false
}

// decimalRat converts a finite Decimal128 to an exact rational.
func decimalRat(d bson.Decimal128) (*big.Rat, bool) {
	coef, exp, err := d.BigInt()
	if err != nil {
		return nil, false
	}
	r := new(big.Rat).SetInt(coef)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(absInt(exp))), nil)
	if exp >= 0 {
		r.Mul(r, new(big.Rat).SetInt(scale))
	} else {
		r.Quo(r, new(big.Rat).SetInt(scale))
	}
	return r, true
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
