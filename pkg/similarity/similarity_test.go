package similarity

import (
	"math"
	"testing"

	"github.com/rushteam/shoprec/core"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want float64
	}{
		{
			name: "overlapping purchase sets",
			a:    []string{"p1", "p2", "p3"},
			b:    []string{"p1", "p2", "p4"},
			want: 0.5, // 2 / 4
		},
		{
			name: "both empty",
			a:    nil,
			b:    nil,
			want: 0,
		},
		{
			name: "one empty",
			a:    []string{"p1"},
			b:    nil,
			want: 0,
		},
		{
			name: "identical",
			a:    []string{"p1", "p2"},
			b:    []string{"p2", "p1"},
			want: 1,
		},
		{
			name: "duplicates treated as set",
			a:    []string{"p1", "p1", "p2"},
			b:    []string{"p1"},
			want: 0.5, // {p1,p2} vs {p1}
		},
		{
			name: "disjoint",
			a:    []string{"p1"},
			b:    []string{"p2"},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Jaccard(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Jaccard() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProducts(t *testing.T) {
	tests := []struct {
		name string
		p1   *core.Product
		p2   *core.Product
		want float64
	}{
		{
			name: "full match",
			p1:   &core.Product{ID: "a", Category: "aromatherapy", Subcategory: "oils", Brand: "Zen", Price: 100},
			p2:   &core.Product{ID: "b", Category: "aromatherapy", Subcategory: "oils", Brand: "Zen", Price: 110},
			want: 1.0,
		},
		{
			name: "category only",
			p1:   &core.Product{ID: "a", Category: "aromatherapy", Subcategory: "oils", Brand: "Zen", Price: 100},
			p2:   &core.Product{ID: "b", Category: "aromatherapy", Subcategory: "candles", Brand: "Other", Price: 500},
			want: 0.4, // 0.4 of evaluated 1.0
		},
		{
			name: "no brand data normalizes over remaining weights",
			p1:   &core.Product{ID: "a", Category: "tea", Price: 50},
			p2:   &core.Product{ID: "b", Category: "tea", Price: 55},
			want: 0.6 / 0.6, // category 0.4 + price 0.2, both fire
		},
		{
			name: "nothing comparable",
			p1:   &core.Product{ID: "a"},
			p2:   &core.Product{ID: "b"},
			want: 0,
		},
		{
			name: "price outside tolerance",
			p1:   &core.Product{ID: "a", Category: "tea", Brand: "Zen", Price: 10},
			p2:   &core.Product{ID: "b", Category: "toys", Brand: "Zen", Price: 100},
			want: 0.2 / 0.8, // brand only, subcategory not evaluated
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Products(tt.p1, tt.p2)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Products() = %v, want %v", got, tt.want)
			}
			// 对称性
			if rev := Products(tt.p2, tt.p1); rev != got {
				t.Errorf("Products not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestProductsBounds(t *testing.T) {
	products := []*core.Product{
		{ID: "a", Category: "tea", Subcategory: "green", Brand: "Zen", Price: 20},
		{ID: "b", Category: "tea", Brand: "Other", Price: 22},
		{ID: "c", Category: "toys", Price: 1000},
		{ID: "d"},
	}
	for _, p1 := range products {
		for _, p2 := range products {
			s := Products(p1, p2)
			if s < 0 || s > 1 {
				t.Errorf("Products(%s,%s) = %v out of [0,1]", p1.ID, p2.ID, s)
			}
		}
	}
}
