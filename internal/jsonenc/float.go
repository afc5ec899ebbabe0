package jsonenc

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

// floatExtension writes integral floats with a ".0" suffix so they decode
// back as floats rather than ints.
type floatExtension struct {
	jsoniter.DummyExtension
}

func (floatExtension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	switch typ.Kind() {
	case reflect.Float32:
		return floatEncoder{bits: 32}
	case reflect.Float64:
		return floatEncoder{bits: 64}
	}
	return nil
}

type floatEncoder struct {
	bits int
}

func (e floatEncoder) value(ptr unsafe.Pointer) float64 {
	if e.bits == 32 {
		return float64(*(*float32)(ptr))
	}
	return *(*float64)(ptr)
}

func (e floatEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return e.value(ptr) == 0
}

func (e floatEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	f := e.value(ptr)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		stream.Error = fmt.Errorf("unsupported float value: %v", f)
		return
	}
	stream.WriteRaw(FormatFloat(f, e.bits))
}

// FormatFloat renders f in its shortest form, in exponent notation below
// 1e-6 and from 1e21 up, and keeps a ".0" on integral values.
func FormatFloat(f float64, bits int) string {
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	s := strconv.FormatFloat(f, format, -1, bits)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
