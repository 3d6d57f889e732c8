package tracked

import (
	"bytes"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tracksim/internal/units"
)

var _ = Describe("Cycle protocol", func() {
	var (
		power       *Cell[units.Power]
		temperature *Cell[units.Temperature]
		group       *Group
	)

	BeforeEach(func() {
		power = NewStrict[units.Power]("power")
		temperature = NewOverwrite[units.Temperature]("temperature")
		group = NewGroup("battery").Add(power, temperature)
	})

	It("should reuse cells across cycles", func() {
		power.Update(units.Watts(100))
		temperature.Update(units.Celsius(25))
		group.AssertAll()

		group.ResetAll()
		_, ok := power.Get()
		Expect(ok).To(BeFalse())
		_, ok = temperature.Get()
		Expect(ok).To(BeFalse())

		power.Update(units.Watts(200))
		temperature.Update(units.Celsius(30))

		p, _ := power.Get()
		Expect(p).To(Equal(units.Watts(200)))
		tc, _ := temperature.Get()
		Expect(tc).To(Equal(units.Celsius(30)))
	})

	It("should list missing cells", func() {
		Expect(group.Missing()).To(Equal([]string{"power", "temperature"}))

		power.Update(units.Watts(1))
		Expect(group.Missing()).To(Equal([]string{"temperature"}))
		Expect(group.Check()).To(MatchError(ErrMissingWrite))
	})

	It("should panic naming every missing cell", func() {
		Expect(group.AssertAll).To(PanicWith(MatchError(
			"tracked: state variable was not updated: battery: power, temperature")))
	})

	It("should not panic when everything was written", func() {
		power.Update(units.Watts(1))
		temperature.Update(units.Kelvin(300))
		Expect(group.AssertAll).NotTo(Panic())
		Expect(group.Check()).To(Succeed())
	})

	It("should reject duplicate cell names", func() {
		Expect(func() {
			group.Add(NewStrict[float64]("power"))
		}).To(Panic())
	})

	It("should return cells in registration order", func() {
		cells := group.Cells()
		Expect(cells).To(HaveLen(2))
		Expect(cells[0].Name()).To(Equal("power"))
		Expect(cells[1].Name()).To(Equal("temperature"))
	})

	It("should box values for mixed-type access", func() {
		_, ok := group.Cells()[0].Value()
		Expect(ok).To(BeFalse())

		power.Update(units.Watts(7))
		v, ok := group.Cells()[0].Value()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(units.Watts(7)))
	})

	It("should dump values with their write site", func() {
		power.Update(units.Watts(5))

		var buf bytes.Buffer
		Expect(group.Dump(&buf)).To(Succeed())

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		Expect(lines).To(HaveLen(2))
		Expect(lines[0]).To(HavePrefix("battery.power = 5 W @ group_test.go:"))
		Expect(lines[1]).To(Equal("battery.temperature = <unset>"))
	})

	Context("with a strict cell", func() {
		It("should panic on the second write of a cycle", func() {
			power.Update(units.Watts(1))
			Expect(func() { power.Update(units.Watts(2)) }).To(
				PanicWith(BeAssignableToTypeOf(&DoubleWriteError{})))
		})

		It("should accept one write per cycle indefinitely", func() {
			for i := 0; i < 5; i++ {
				group.ResetAll()
				Expect(func() { power.Update(units.Watts(float64(i))) }).NotTo(Panic())
			}
		})
	})

	Context("with an overwrite cell", func() {
		It("should refresh provenance on each write", func() {
			temperature.Update(units.Kelvin(290))
			_, first, _ := temperature.GetWithProvenance()
			temperature.Update(units.Kelvin(291))
			_, second, _ := temperature.GetWithProvenance()

			Expect(second.Line).NotTo(Equal(first.Line))
		})
	})

	It("should satisfy errors.Is for the missing write", func() {
		err := group.Check()
		Expect(errors.Is(err, ErrMissingWrite)).To(BeTrue())
		Expect(errors.Is(err, ErrDoubleWrite)).To(BeFalse())

		var mw *MissingWriteError
		Expect(errors.As(err, &mw)).To(BeTrue())
		Expect(mw.Group).To(Equal("battery"))
	})
})
