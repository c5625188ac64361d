package walker

import (
	"errors"
	"io"

	json "github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/dramsec/hammerplot/analysis"
	"github.com/dramsec/hammerplot/dramlog"
)

func flips(n int) []json.RawMessage {
	f := make([]json.RawMessage, n)
	for i := range f {
		f[i] = json.RawMessage(`{}`)
	}

	return f
}

func pairAttack(name string, r1, r2 uint, errs dramlog.ErrorsInRows) dramlog.Attack {
	return dramlog.Attack{
		Name: name,
		Record: &dramlog.PairRecord{
			HammerRow1: r1,
			HammerRow2: r2,
			ErrorRows:  errs,
		},
	}
}

func seqAttack(name string, errs dramlog.ErrorsInRows, pairs ...[2]uint) dramlog.Attack {
	return dramlog.Attack{
		Name: name,
		Record: &dramlog.SequentialRecord{
			RowPairs:  pairs,
			ErrorRows: errs,
		},
	}
}

func oneRow(label string, flipCount int) dramlog.ErrorsInRows {
	return dramlog.ErrorsInRows{
		{Row: label, Cols: []dramlog.ColErrors{{Col: 1, Flips: flips(flipCount)}}},
	}
}

func logOf(attacks ...dramlog.Attack) *dramlog.AttackLog {
	return &dramlog.AttackLog{
		Sets: []dramlog.AttackSet{
			{Name: "sequence_0", ReadCount: 1000, Attacks: attacks},
		},
	}
}

var _ = Describe("Walker", func() {
	var (
		mockCtrl *gomock.Controller
		renderer *MockRenderer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		renderer = NewMockRenderer(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	Context("in per-attack mode", func() {
		It("should render every record in log order with its title", func() {
			log := logOf(
				pairAttack("pair_0", 100, 100, oneRow("101", 3)),
				seqAttack("sequential_1", oneRow("11", 1),
					[2]uint{0, 10}, [2]uint{1, 12}),
			)

			gomock.InOrder(
				renderer.EXPECT().
					RenderSingleAttack(gomock.Any(), "Hammered rows: (100, 100)").
					DoAndReturn(func(flat *analysis.FlatAttack, _ string) error {
						Expect(flat.Flips()).To(Equal(3))
						Expect(flat.RowLabels).To(Equal([]string{"101"}))
						return nil
					}),
				renderer.EXPECT().
					RenderSingleAttack(gomock.Any(),
						"Sequential attack on rows from 10 to 12").
					Return(nil),
			)

			Expect(New(PerAttack, renderer).Walk(log)).To(Succeed())
		})

		It("should skip an attack with no affected rows", func() {
			log := logOf(pairAttack("pair_0", 100, 100, dramlog.ErrorsInRows{}))

			w := New(PerAttack, renderer)
			w.notices = io.Discard

			Expect(w.Walk(log)).To(Succeed())
		})

		It("should stop when the renderer fails", func() {
			log := logOf(
				pairAttack("pair_0", 1, 1, oneRow("2", 1)),
				pairAttack("pair_1", 3, 3, oneRow("4", 1)),
			)

			renderer.EXPECT().
				RenderSingleAttack(gomock.Any(), gomock.Any()).
				Return(errors.New("display gone"))

			err := New(PerAttack, renderer).Walk(log)
			Expect(err).To(MatchError("display gone"))
		})
	})

	Context("in aggressor-vs-victim mode", func() {
		It("should fold every attack and render exactly once", func() {
			log := logOf(
				pairAttack("pair_0", 200, 200, oneRow("201", 3)),
				pairAttack("pair_1", 200, 200, oneRow("202", 1)),
			)

			renderer.EXPECT().
				RenderAggressorsVsVictims(gomock.Any()).
				DoAndReturn(func(table *analysis.AVTable) error {
					Expect(table.Aggressors()).To(Equal([]uint{200}))

					entries := table.Victims(200)
					Expect(entries).To(HaveLen(2))
					Expect(entries[0].Bitflips).To(Equal(3))
					Expect(entries[1].Bitflips).To(Equal(1))
					return nil
				})

			walker := New(AggressorsVsVictims, renderer)
			Expect(walker.Walk(log)).To(Succeed())
		})

		It("should abort on a sequential attack before rendering", func() {
			log := logOf(
				pairAttack("pair_0", 200, 200, oneRow("201", 3)),
				seqAttack("sequential_1", oneRow("11", 1), [2]uint{0, 10}),
			)

			err := New(AggressorsVsVictims, renderer).Walk(log)

			var mismatch *ModeMismatchError
			Expect(errors.As(err, &mismatch)).To(BeTrue())
			Expect(mismatch.Attack).To(Equal("sequential_1"))
			Expect(mismatch.Error()).To(ContainSubstring("--row-pair-distance 0"))
		})

		It("should abort on a pair attack with unequal rows", func() {
			log := logOf(pairAttack("pair_0", 50, 60, oneRow("51", 1)))

			err := New(AggressorsVsVictims, renderer).Walk(log)

			var mismatch *ModeMismatchError
			Expect(errors.As(err, &mismatch)).To(BeTrue())
			Expect(mismatch.Reason).To(ContainSubstring("50"))
			Expect(mismatch.Reason).To(ContainSubstring("60"))
		})

		It("should fail when the log holds no bit flips", func() {
			log := logOf(pairAttack("pair_0", 7, 7, dramlog.ErrorsInRows{}))

			err := New(AggressorsVsVictims, renderer).Walk(log)
			Expect(err).To(HaveOccurred())
		})
	})

	Context("with an event sink", func() {
		It("should report every visited record", func() {
			sink := NewMockEventSink(mockCtrl)
			log := logOf(
				pairAttack("pair_0", 1, 1, oneRow("2", 1)),
				pairAttack("pair_1", 3, 3, oneRow("4", 2)),
			)

			sink.EXPECT().
				RecordAttack("sequence_0", "pair_0", gomock.Any()).
				Return(nil)
			sink.EXPECT().
				RecordAttack("sequence_0", "pair_1", gomock.Any()).
				Return(nil)
			renderer.EXPECT().
				RenderSingleAttack(gomock.Any(), gomock.Any()).
				Return(nil).
				Times(2)

			walker := New(PerAttack, renderer).WithEventSink(sink)
			Expect(walker.Walk(log)).To(Succeed())
		})
	})
})
