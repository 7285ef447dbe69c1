package marshal

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mdconf/internal/dynval"
	"github.com/san-kum/mdconf/internal/schema"
)

type fixture struct {
	cutoff float64
	nbins  int32
	width  float64

	pairSeen  bool
	innerSeen bool

	root  *schema.Section
	pair  *schema.Section
	inner *schema.Section
}

// newFixture builds root{cutoff} -> pair{nbins} -> inner{width}.
func newFixture() *fixture {
	f := &fixture{}
	f.root = schema.NewSection("root").Add(schema.NewDouble("cutoff", &f.cutoff))
	f.pair = f.root.Section("pair", schema.WithNotify(&f.pairSeen)).
		Add(schema.NewInt("nbins", &f.nbins))
	f.inner = f.pair.Section("inner", schema.WithNotify(&f.innerSeen)).
		Add(schema.NewDouble("width", &f.width))
	return f
}

func m(entries ...dynval.Entry) dynval.Value { return dynval.MapOf(entries...) }

func kv(k string, v dynval.Value) dynval.Entry { return dynval.Pair(k, v) }

func asError(err error) *Error {
	var merr *Error
	ExpectWithOffset(1, errors.As(err, &merr)).To(BeTrue(), "expected *marshal.Error, got %v", err)
	return merr
}

var _ = Describe("Marshal", func() {
	var f *fixture

	BeforeEach(func() {
		f = newFixture()
	})

	Context("pair distribution input", func() {
		It("fills the root property and the child section", func() {
			err := Marshal(m(
				kv("cutoff", dynval.Float(2.5)),
				kv("pair", m(kv("nbins", dynval.Int(50)))),
			), f.root)

			Expect(err).NotTo(HaveOccurred())
			Expect(f.cutoff).To(Equal(2.5))
			Expect(f.pair.Provided()).To(BeTrue())
			Expect(f.pairSeen).To(BeTrue())
			Expect(f.nbins).To(Equal(int32(50)))
		})

		It("rejects a string cutoff and leaves pair untouched", func() {
			err := Marshal(m(kv("cutoff", dynval.String("oops"))), f.root)

			Expect(err).To(MatchError(ErrTypeMismatch))
			merr := asError(err)
			Expect(merr.Key).To(Equal("cutoff"))
			Expect(merr.Section).To(Equal("root"))
			Expect(merr.Error()).To(ContainSubstring("property 'cutoff' of section 'root' should be a double (got string)"))
			Expect(f.pair.Provided()).To(BeFalse())
			Expect(f.pairSeen).To(BeFalse())
		})
	})

	Context("provided flags", func() {
		It("marks exactly the visited sections", func() {
			Expect(Marshal(m(kv("pair", m())), f.root)).To(Succeed())

			Expect(f.pair.Provided()).To(BeTrue())
			Expect(f.pairSeen).To(BeTrue())
			Expect(f.inner.Provided()).To(BeFalse())
			Expect(f.innerSeen).To(BeFalse())
		})

		It("marks nested sections through every level", func() {
			Expect(Marshal(m(kv("pair", m(kv("inner", m(kv("width", dynval.Float(0.1))))))), f.root)).To(Succeed())

			Expect(f.pair.Provided()).To(BeTrue())
			Expect(f.inner.Provided()).To(BeTrue())
			Expect(f.innerSeen).To(BeTrue())
			Expect(f.width).To(Equal(0.1))
		})

		It("leaves everything unprovided for an empty map", func() {
			Expect(Marshal(m(), f.root)).To(Succeed())
			Expect(f.pair.Provided()).To(BeFalse())
			Expect(f.inner.Provided()).To(BeFalse())
		})
	})

	Context("unknown and reserved keys", func() {
		DescribeTable("unknown keys fail at any depth",
			func(input func() dynval.Value, key, section string) {
				err := Marshal(input(), f.root)
				Expect(err).To(MatchError(ErrUnknownKey))
				merr := asError(err)
				Expect(merr.Key).To(Equal(key))
				Expect(merr.Section).To(Equal(section))
				Expect(err.Error()).To(ContainSubstring("could not find property '" + key + "'"))
			},
			Entry("root", func() dynval.Value {
				return m(kv("bogus", dynval.Int(1)))
			}, "bogus", "root"),
			Entry("child", func() dynval.Value {
				return m(kv("pair", m(kv("bogus", dynval.Int(1)))))
			}, "bogus", "pair"),
			Entry("grandchild", func() dynval.Value {
				return m(kv("pair", m(kv("inner", m(kv("bogus", dynval.Null()))))))
			}, "bogus", "inner"),
			Entry("single underscore", func() dynval.Value {
				return m(kv("_bogus", dynval.Int(1)))
			}, "_bogus", "root"),
		)

		It("treats a single leading underscore as an ordinary key", func() {
			err := Marshal(m(kv("_x", dynval.Int(1))), f.root)
			Expect(err).To(MatchError(ErrUnknownKey))
		})

		It("ignores reserved keys regardless of value", func() {
			input := m(
				kv("__meta", m(kv("anything", dynval.String("goes")))),
				kv("__n", dynval.Null()),
				kv("__t", dynval.TupleOf(dynval.Bool(true))),
				kv("pair", m(kv("__inner", dynval.FloatArray([]float64{1, 2}, 1, 2)))),
			)
			Expect(Marshal(input, f.root)).To(Succeed())
		})

		It("honours a custom reserved prefix", func() {
			input := m(kv("x-vendor", dynval.Int(1)), kv("__meta", dynval.Int(1)))
			err := New(WithReservedPrefix("x-")).Marshal(input, f.root)
			Expect(err).To(MatchError(ErrUnknownKey))
			Expect(asError(err).Key).To(Equal("__meta"))
		})

		It("rejects non-string keys", func() {
			input := dynval.MapOf(dynval.Entry{Key: dynval.Int(7), Value: dynval.Float(1)})
			err := Marshal(input, f.root)
			Expect(err).To(MatchError(ErrInvalidKeyType))
			Expect(asError(err).Got).To(Equal("int"))
		})
	})

	Context("section values", func() {
		DescribeTable("non-map values for a section fail at any depth",
			func(input func() dynval.Value, key string) {
				err := Marshal(input(), f.root)
				Expect(err).To(MatchError(ErrExpectedSection))
				Expect(asError(err).Key).To(Equal(key))
			},
			Entry("scalar at root", func() dynval.Value {
				return m(kv("pair", dynval.Int(3)))
			}, "pair"),
			Entry("tuple at root", func() dynval.Value {
				return m(kv("pair", dynval.TupleOf()))
			}, "pair"),
			Entry("array in child", func() dynval.Value {
				return m(kv("pair", m(kv("inner", dynval.FloatArray([]float64{1})))))
			}, "inner"),
		)

		It("does not mark a section provided when its value is rejected", func() {
			Expect(Marshal(m(kv("pair", dynval.String("x"))), f.root)).NotTo(Succeed())
			Expect(f.pair.Provided()).To(BeFalse())
			Expect(f.pairSeen).To(BeFalse())
		})

		It("rejects a root value that is not a map", func() {
			err := Marshal(dynval.Float(1), f.root)
			Expect(err).To(MatchError(ErrExpectedSection))
			Expect(err.Error()).To(Equal("marshal: section 'root' should be a map (got float)"))
		})
	})

	Context("partial application", func() {
		It("keeps writes made before the failing key", func() {
			err := Marshal(m(
				kv("cutoff", dynval.Float(3)),
				kv("pair", m(kv("nbins", dynval.Int(10)), kv("inner", dynval.Int(0)))),
			), f.root)

			Expect(err).To(MatchError(ErrExpectedSection))
			Expect(f.cutoff).To(Equal(3.0))
			Expect(f.nbins).To(Equal(int32(10)))
			Expect(f.pair.Provided()).To(BeTrue())
			Expect(f.inner.Provided()).To(BeFalse())
		})

		It("stops before keys that follow the failure", func() {
			err := Marshal(m(
				kv("bogus", dynval.Int(1)),
				kv("cutoff", dynval.Float(9)),
			), f.root)

			Expect(err).To(MatchError(ErrUnknownKey))
			Expect(f.cutoff).To(BeZero())
		})

		It("propagates child errors unchanged", func() {
			err := Marshal(m(kv("pair", m(kv("nbins", dynval.Float(1.5))))), f.root)
			merr := asError(err)
			Expect(merr.Key).To(Equal("nbins"))
			Expect(merr.Section).To(Equal("pair"))
			Expect(merr.Path).To(Equal("root.pair"))
		})
	})

	It("panics on a nil property variant", func() {
		Expect(func() { coerce(nil, dynval.Int(1)) }).To(PanicWith(
			WithTransform(func(e *Error) error { return e.Wrapped }, Equal(ErrInternalSchema)),
		))
	})
})
