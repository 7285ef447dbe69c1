package marshal

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mdconf/internal/dynval"
	"github.com/san-kum/mdconf/internal/schema"
)

// marshalOne runs a single key through a fresh root section holding p.
func marshalOne(p schema.Property, v dynval.Value) error {
	root := schema.NewSection("root").Add(p)
	return Marshal(dynval.MapOf(dynval.Pair(p.Name(), v)), root)
}

var _ = Describe("Coercion", func() {
	Describe("scalars", func() {
		It("stores integers", func() {
			var n int32
			Expect(marshalOne(schema.NewInt("n", &n), dynval.Int(-7))).To(Succeed())
			Expect(n).To(Equal(int32(-7)))
		})

		It("rejects integers outside int32", func() {
			n := int32(4)
			err := marshalOne(schema.NewInt("n", &n), dynval.Int(math.MaxInt32+1))
			Expect(err).To(MatchError(ErrTypeMismatch))
			Expect(n).To(Equal(int32(4)))
		})

		It("rejects floats for integer slots", func() {
			var n int32
			err := marshalOne(schema.NewInt("n", &n), dynval.Float(1))
			Expect(err).To(MatchError(ErrTypeMismatch))
			Expect(err.Error()).To(ContainSubstring("should be an integer (got float)"))
		})

		It("promotes integers into doubles", func() {
			var f float64
			Expect(marshalOne(schema.NewDouble("f", &f), dynval.Int(3))).To(Succeed())
			Expect(f).To(Equal(3.0))
		})

		It("stores booleans and rejects integers for them", func() {
			var b bool
			Expect(marshalOne(schema.NewBool("b", &b), dynval.Bool(true))).To(Succeed())
			Expect(b).To(BeTrue())
			Expect(marshalOne(schema.NewBool("b", &b), dynval.Int(0))).To(MatchError(ErrTypeMismatch))
			Expect(b).To(BeTrue())
		})

		It("rejects null everywhere", func() {
			var f float64
			Expect(marshalOne(schema.NewDouble("f", &f), dynval.Null())).To(MatchError(ErrTypeMismatch))
		})
	})

	Describe("strings", func() {
		It("zero-fills the rest of a string buffer", func() {
			buf := []byte("XXXXXXXX")
			Expect(marshalOne(schema.NewString("s", buf), dynval.String("abc"))).To(Succeed())
			Expect(buf).To(Equal([]byte{'a', 'b', 'c', 0, 0, 0, 0, 0}))
			Expect(schema.CString(buf)).To(Equal("abc"))
		})

		It("keeps room for the terminator", func() {
			buf := make([]byte, 4)
			Expect(marshalOne(schema.NewString("s", buf), dynval.String("abc"))).To(Succeed())
			err := marshalOne(schema.NewString("s", buf), dynval.String("abcd"))
			Expect(err).To(MatchError(ErrCapacityOverflow))
			Expect(schema.CString(buf)).To(Equal("abc"))
		})

		It("blank-pads a fixed-width field", func() {
			buf := make([]byte, 6)
			Expect(marshalOne(schema.NewFixedString("s", buf), dynval.String("vv"))).To(Succeed())
			Expect(string(buf)).To(Equal("vv    "))
			Expect(schema.FString(buf)).To(Equal("vv"))
		})

		It("fills a fixed-width field exactly", func() {
			buf := make([]byte, 3)
			Expect(marshalOne(schema.NewFixedString("s", buf), dynval.String("abc"))).To(Succeed())
			Expect(marshalOne(schema.NewFixedString("s", buf), dynval.String("abcd"))).To(MatchError(ErrCapacityOverflow))
			Expect(string(buf)).To(Equal("abc"))
		})
	})

	Describe("points", func() {
		It("stores a 3-tuple of floats", func() {
			var pt [3]float64
			v := dynval.TupleOf(dynval.Float(1.5), dynval.Float(2), dynval.Float(-3))
			Expect(marshalOne(schema.NewPoint3("box", &pt), v)).To(Succeed())
			Expect(pt).To(Equal([3]float64{1.5, 2, -3}))
		})

		It("rejects integer items in a float point", func() {
			pt := [3]float64{9, 9, 9}
			v := dynval.TupleOf(dynval.Int(1), dynval.Int(2), dynval.Int(3))
			err := marshalOne(schema.NewPoint3("box", &pt), v)
			Expect(err).To(MatchError(ErrTypeMismatch))
			Expect(err.Error()).To(ContainSubstring("element 0 is int"))
			Expect(pt).To(Equal([3]float64{9, 9, 9}))

			v = dynval.TupleOf(dynval.Float(1.5), dynval.Int(2), dynval.Float(-3))
			Expect(marshalOne(schema.NewPoint3("box", &pt), v)).To(MatchError(ErrTypeMismatch))
			Expect(pt).To(Equal([3]float64{9, 9, 9}))
		})

		It("rejects the wrong arity", func() {
			var pt [3]float64
			v := dynval.TupleOf(dynval.Float(1), dynval.Float(2))
			err := marshalOne(schema.NewPoint3("box", &pt), v)
			Expect(err).To(MatchError(ErrShapeMismatch))
			Expect(err.Error()).To(ContainSubstring("should be a 3-tuple of floats (got tuple of 2)"))
		})

		It("rejects non-numeric items without writing", func() {
			pt := [3]float64{9, 9, 9}
			v := dynval.TupleOf(dynval.Float(1), dynval.Float(2), dynval.String("z"))
			Expect(marshalOne(schema.NewPoint3("box", &pt), v)).To(MatchError(ErrTypeMismatch))
			Expect(pt).To(Equal([3]float64{9, 9, 9}))
		})

		It("stores integer points and rejects float items", func() {
			var pt [3]int32
			Expect(marshalOne(schema.NewIntPoint3("grid", &pt),
				dynval.TupleOf(dynval.Int(4), dynval.Int(5), dynval.Int(6)))).To(Succeed())
			Expect(pt).To(Equal([3]int32{4, 5, 6}))

			err := marshalOne(schema.NewIntPoint3("grid", &pt),
				dynval.TupleOf(dynval.Int(4), dynval.Float(5), dynval.Int(6)))
			Expect(err).To(MatchError(ErrTypeMismatch))
			Expect(pt).To(Equal([3]int32{4, 5, 6}))
		})
	})

	Describe("lists", func() {
		var (
			fbuf   []float64
			ibuf   []int32
			length int32
		)

		BeforeEach(func() {
			fbuf = make([]float64, 4)
			ibuf = make([]int32, 4)
			length = -1
		})

		It("stores a scalar as a one-element list", func() {
			Expect(marshalOne(schema.NewFloatList("t", fbuf, &length), dynval.Float(300))).To(Succeed())
			Expect(fbuf[0]).To(Equal(300.0))
			Expect(length).To(Equal(int32(1)))
		})

		It("rejects an integer scalar without writing", func() {
			fbuf[0] = 42
			err := marshalOne(schema.NewFloatList("t", fbuf, &length), dynval.Int(7))
			Expect(err).To(MatchError(ErrTypeMismatch))
			Expect(fbuf[0]).To(Equal(42.0))
			Expect(length).To(Equal(int32(-1)))
		})

		It("stores a one-dimensional array", func() {
			v := dynval.FloatArray([]float64{1, 2, 3})
			Expect(marshalOne(schema.NewFloatList("t", fbuf, &length), v)).To(Succeed())
			Expect(fbuf[:length]).To(Equal([]float64{1, 2, 3}))
		})

		It("promotes float32 and integer arrays", func() {
			Expect(marshalOne(schema.NewFloatList("t", fbuf, &length),
				dynval.Float32Array([]float32{0.5, 1.5}))).To(Succeed())
			Expect(fbuf[:length]).To(Equal([]float64{0.5, 1.5}))

			Expect(marshalOne(schema.NewFloatList("t", fbuf, &length),
				dynval.IntArray([]int64{7, 8, 9}))).To(Succeed())
			Expect(fbuf[:length]).To(Equal([]float64{7, 8, 9}))
		})

		It("accepts an empty array", func() {
			Expect(marshalOne(schema.NewFloatList("t", fbuf, &length), dynval.FloatArray(nil, 0))).To(Succeed())
			Expect(length).To(BeZero())
		})

		It("fails before writing when the array exceeds capacity", func() {
			fbuf[0] = 42
			v := dynval.FloatArray([]float64{1, 2, 3, 4, 5})
			err := marshalOne(schema.NewFloatList("t", fbuf, &length), v)
			Expect(err).To(MatchError(ErrCapacityOverflow))
			Expect(fbuf[0]).To(Equal(42.0))
			Expect(length).To(Equal(int32(-1)))
		})

		It("rejects higher ranks", func() {
			v := dynval.FloatArray([]float64{1, 2, 3, 4}, 2, 2)
			Expect(marshalOne(schema.NewFloatList("t", fbuf, &length), v)).To(MatchError(ErrShapeMismatch))
		})

		It("rejects string arrays as a type mismatch", func() {
			v := dynval.StringArray([]string{"a"})
			Expect(marshalOne(schema.NewFloatList("t", fbuf, &length), v)).To(MatchError(ErrTypeMismatch))
		})

		DescribeTable("element types with no conversion",
			func(v dynval.Value) {
				Expect(marshalOne(schema.NewFloatList("t", fbuf, &length), v)).To(MatchError(ErrUnsupportedElementType))
				Expect(marshalOne(schema.NewIntList("ids", ibuf, &length), v)).To(MatchError(ErrUnsupportedElementType))
			},
			Entry("complex", dynval.ComplexArray([]complex128{1 + 2i})),
			Entry("bool", dynval.BoolArray([]bool{true, false})),
		)

		It("stores integer lists of any integer width", func() {
			Expect(marshalOne(schema.NewIntList("ids", ibuf, &length),
				dynval.Uint8Array([]uint8{1, 255}))).To(Succeed())
			Expect(ibuf[:length]).To(Equal([]int32{1, 255}))

			Expect(marshalOne(schema.NewIntList("ids", ibuf, &length),
				dynval.Int32Array([]int32{-1, 0, 1}))).To(Succeed())
			Expect(ibuf[:length]).To(Equal([]int32{-1, 0, 1}))

			Expect(marshalOne(schema.NewIntList("ids", ibuf, &length), dynval.Int(12))).To(Succeed())
			Expect(ibuf[0]).To(Equal(int32(12)))
			Expect(length).To(Equal(int32(1)))
		})

		It("rejects float arrays and out-of-range elements for integer lists", func() {
			Expect(marshalOne(schema.NewIntList("ids", ibuf, &length),
				dynval.FloatArray([]float64{1}))).To(MatchError(ErrTypeMismatch))
			Expect(marshalOne(schema.NewIntList("ids", ibuf, &length),
				dynval.IntArray([]int64{1, math.MaxInt32 + 1}))).To(MatchError(ErrTypeMismatch))
			Expect(length).To(Equal(int32(-1)))
		})

		It("lays string lists out as padded records", func() {
			buf := make([]byte, 12)
			v := dynval.StringArray([]string{"Ar", "Kr", "Xe"})
			Expect(marshalOne(schema.NewStringList("species", buf, 4, &length), v)).To(Succeed())
			Expect(string(buf)).To(Equal("Ar  Kr  Xe  "))
			Expect(schema.FStrings(buf, 4, int(length))).To(Equal([]string{"Ar", "Kr", "Xe"}))
		})

		It("rejects over-wide string list records", func() {
			buf := make([]byte, 8)
			v := dynval.StringArray([]string{"Ar", "Krypton"})
			Expect(marshalOne(schema.NewStringList("species", buf, 4, &length), v)).To(MatchError(ErrCapacityOverflow))
			Expect(buf).To(Equal(make([]byte, 8)))
		})

		It("stores a single string as a one-record list", func() {
			buf := make([]byte, 8)
			Expect(marshalOne(schema.NewStringList("species", buf, 4, &length), dynval.String("Ne"))).To(Succeed())
			Expect(string(buf[:4])).To(Equal("Ne  "))
			Expect(length).To(Equal(int32(1)))
		})
	})

	Describe("grids", func() {
		rowMajor := func(n int) []float64 {
			data := make([]float64, n)
			for i := range data {
				data[i] = float64(i) + 0.25
			}
			return data
		}

		DescribeTable("2-D arrays read back through the column-major index",
			func(d1, d2 int) {
				buf := make([]float64, d1*d2)
				p := schema.NewArray2D("eps", buf, d1, d2)
				src := rowMajor(d1 * d2)
				Expect(marshalOne(p, dynval.FloatArray(src, d1, d2))).To(Succeed())

				for i := 0; i < d1; i++ {
					for j := 0; j < d2; j++ {
						Expect(buf[i+j*d1]).To(Equal(src[i*d2+j]), "element [%d][%d]", i, j)
					}
				}
			},
			Entry("1x1", 1, 1),
			Entry("2x3", 2, 3),
			Entry("3x2", 3, 2),
			Entry("4x4", 4, 4),
		)

		DescribeTable("3-D arrays read back through the column-major index",
			func(d1, d2, d3 int) {
				buf := make([]float64, d1*d2*d3)
				p := schema.NewArray3D("lambda", buf, d1, d2, d3)
				src := rowMajor(d1 * d2 * d3)
				Expect(marshalOne(p, dynval.FloatArray(src, d1, d2, d3))).To(Succeed())

				for i := 0; i < d1; i++ {
					for j := 0; j < d2; j++ {
						for k := 0; k < d3; k++ {
							Expect(buf[i+(j+k*d2)*d1]).To(Equal(src[(i*d2+j)*d3+k]), "element [%d][%d][%d]", i, j, k)
						}
					}
				}
			},
			Entry("1x1x1", 1, 1, 1),
			Entry("2x3x4", 2, 3, 4),
			Entry("3x3x3", 3, 3, 3),
		)

		It("promotes integer grids", func() {
			buf := make([]float64, 4)
			Expect(marshalOne(schema.NewArray2D("eps", buf, 2, 2),
				dynval.IntArray([]int64{1, 2, 3, 4}, 2, 2))).To(Succeed())
			Expect(buf).To(Equal([]float64{1, 3, 2, 4}))
		})

		It("rejects transposed dimensions without writing", func() {
			buf := make([]float64, 6)
			err := marshalOne(schema.NewArray2D("eps", buf, 2, 3), dynval.FloatArray(rowMajor(6), 3, 2))
			Expect(err).To(MatchError(ErrShapeMismatch))
			Expect(buf).To(Equal(make([]float64, 6)))
		})

		It("rejects the wrong rank", func() {
			buf := make([]float64, 8)
			Expect(marshalOne(schema.NewArray3D("lambda", buf, 2, 2, 2),
				dynval.FloatArray(rowMajor(4), 2, 2))).To(MatchError(ErrShapeMismatch))
			Expect(marshalOne(schema.NewArray2D("eps", buf[:4], 2, 2),
				dynval.Float(1))).To(MatchError(ErrTypeMismatch))
		})
	})
})
