package pipeline

import (
	"fmt"
	"testing"

	"github.com/theirongolddev/lifeline/internal/model"
)

func BenchmarkEvaluate(b *testing.B) {
	var bills []model.Bill
	for i := 0; i < 200; i++ {
		bill := model.NewBill(fmt.Sprintf("b%d", i), "Bill", float64(50+i*13), model.BillTypes[i%len(model.BillTypes)], model.CategoryHigh, testNow.AddDate(0, 0, i%90-10))
		bill.IsEssential = i%3 == 0
		bills = append(bills, bill)
	}
	snap := household(4200, 2500, bills...)
	r := newTestRunner()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Evaluate(snap); err != nil {
			b.Fatal(err)
		}
	}
}
