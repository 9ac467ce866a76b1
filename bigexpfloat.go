// Copyright © 2018-2020 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package musk

import (
	"math"
)

// BigExpFloat is a float32 mantissa paired with an independent int32
// exponent, used to carry binomial survival-function p-values that
// underflow ordinary float64 arithmetic. Every operation renormalizes
// its result by pulling the IEEE-754 exponent back out of the mantissa,
// so float never drifts outside [1,2).
type BigExpFloat struct {
	exp   int32
	float float32
}

// BigExpZero and BigExpOne are the additive and multiplicative
// identities.
var (
	BigExpZero = BigExpFloat{exp: 0, float: 0}
	BigExpOne  = BigExpFloat{exp: 0, float: 1}
)

// decodeF32 splits f into a mantissa in [1,2) (or 0) and a power-of-two
// exponent, mirroring the bit-twiddling done on the IEEE-754 layout:
// the exponent field is extracted and re-biased to zero in place.
func decodeF32(f float32) (float32, int32) {
	if f == 0 {
		return 0, 0
	}
	bits := math.Float32bits(f)
	exponent := int32((bits>>23)&0xff) - 127
	mantissa := math.Float32frombits((bits & 0x807fffff) | 0x3f800000)
	return mantissa, exponent
}

// BigExpFromFloat32 constructs a BigExpFloat from an ordinary float32.
func BigExpFromFloat32(f float32) BigExpFloat {
	m, e := decodeF32(f)
	return BigExpFloat{float: m, exp: e}
}

// BigExpFromFloat64 constructs a BigExpFloat from a float64, narrowing
// the mantissa to float32 precision but keeping the full exponent range.
func BigExpFromFloat64(f float64) BigExpFloat {
	bits := math.Float64bits(f)
	exponent := int32((bits>>52)&0x7ff) - 1023
	mantissa := float32(math.Float64frombits((bits & 0x800fffffffffffff) | 0x3ff0000000000000))
	return BigExpFloat{float: mantissa, exp: exponent}
}

// AsFloat64 collapses the value back into an ordinary float64, for
// reporting and comparisons against a configured significance threshold.
// It underflows to 0 once exp is large and negative, exactly like the
// float64 values BigExpFloat exists to avoid computing with directly.
func (a BigExpFloat) AsFloat64() float64 {
	return float64(a.float) * math.Pow(2, float64(a.exp))
}

// IsZero reports whether a is the additive identity.
func (a BigExpFloat) IsZero() bool {
	return a.float == 0
}

// Neg returns -a.
func (a BigExpFloat) Neg() BigExpFloat {
	return BigExpFloat{exp: a.exp, float: -a.float}
}

// Mul returns a*b.
func (a BigExpFloat) Mul(b BigExpFloat) BigExpFloat {
	m, e := decodeF32(a.float * b.float)
	return BigExpFloat{float: m, exp: a.exp + b.exp + e}
}

// Div returns a/b.
func (a BigExpFloat) Div(b BigExpFloat) BigExpFloat {
	m, e := decodeF32(a.float / b.float)
	return BigExpFloat{float: m, exp: a.exp - b.exp + e}
}

// Add returns a+b, first normalizing the smaller-exponent operand's
// mantissa by scaling it by 2^(difference) before the plain float32 add.
func (a BigExpFloat) Add(b BigExpFloat) BigExpFloat {
	if a.exp == b.exp {
		m, e := decodeF32(a.float + b.float)
		return BigExpFloat{float: m, exp: a.exp + e}
	}
	diff := a.exp - b.exp
	if diff > 0 {
		m, e := decodeF32(a.float + b.float*pow2f32(-diff))
		return BigExpFloat{float: m, exp: a.exp + e}
	}
	m, e := decodeF32(a.float*pow2f32(diff) + b.float)
	return BigExpFloat{float: m, exp: b.exp + e}
}

// Sub returns a-b.
func (a BigExpFloat) Sub(b BigExpFloat) BigExpFloat {
	if a.exp == b.exp {
		m, e := decodeF32(a.float - b.float)
		return BigExpFloat{float: m, exp: a.exp + e}
	}
	diff := a.exp - b.exp
	if diff > 0 {
		m, e := decodeF32(a.float - b.float*pow2f32(-diff))
		return BigExpFloat{float: m, exp: a.exp + e}
	}
	m, e := decodeF32(a.float*pow2f32(diff) - b.float)
	return BigExpFloat{float: m, exp: b.exp + e}
}

func pow2f32(e int32) float32 {
	return float32(math.Pow(2, float64(e)))
}

const ln2 = 0.6931471805599453

// Ln returns ln(a), valid for a>0.
func (a BigExpFloat) Ln() BigExpFloat {
	m, e := decodeF32(float32(math.Log(float64(a.float))) + float32(float64(a.exp)*ln2))
	return BigExpFloat{float: m, exp: e}
}

// Exp returns e^a, computed by repeated squaring/square-rooting of
// e^mantissa to walk the result through a's exponent.
func (a BigExpFloat) Exp() BigExpFloat {
	base := BigExpFromFloat32(float32(math.Exp(float64(a.float))))
	switch {
	case a.exp > 0:
		acc := base
		for i := int32(0); i < a.exp; i++ {
			acc = acc.Square()
		}
		return acc
	case a.exp < 0:
		acc := base
		for i := int32(0); i < -a.exp; i++ {
			acc = acc.Sqrt()
		}
		return acc
	default:
		return base
	}
}

// Sqrt returns sqrt(a).
func (a BigExpFloat) Sqrt() BigExpFloat {
	if a.exp%2 == 0 {
		m, e := decodeF32(float32(math.Sqrt(float64(a.float))))
		return BigExpFloat{float: m, exp: a.exp/2 + e}
	}
	m, e := decodeF32(float32(math.Sqrt(float64(a.float)) * math.Sqrt2))
	return BigExpFloat{float: m, exp: (a.exp-1)/2 + e}
}

// Square returns a*a.
func (a BigExpFloat) Square() BigExpFloat {
	return a.Mul(a)
}
