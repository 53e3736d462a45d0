package selection

import (
	"reflect"
	"strconv"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		token string
		count int
		want  []int
	}{
		{"single", "3", 10, []int{2}},
		{"first", "1", 1, []int{0}},
		{"zero", "0", 10, []int{}},
		{"past end", "11", 10, []int{}},
		{"range", "2-5", 10, []int{1, 2, 3, 4}},
		{"range reversed", "5-2", 10, []int{}},
		{"range single", "4-4", 10, []int{3}},
		{"range clipped", "8-20", 10, []int{7, 8, 9}},
		{"range from zero", "0-2", 10, []int{0, 1}},
		{"range spaces", " 2 - 3 ", 10, []int{1, 2}},
		{"range missing end", "2-", 10, []int{}},
		{"range three parts", "1-2-3", 10, []int{}},
		{"list", "1,3,5", 10, []int{0, 2, 4}},
		{"list dedup", "1,1,3", 10, []int{0, 2}},
		{"list unsorted", "5, 1 ,3", 10, []int{0, 2, 4}},
		{"list skips junk", "1,x,3,99", 10, []int{0, 2}},
		{"list wins over range", "1-3,5", 10, []int{4}},
		{"garbage", "abc", 10, []int{}},
		{"empty", "", 10, []int{}},
		{"negative", "-1", 10, []int{}},
		{"empty snapshot", "1", 0, []int{}},
		{"negative count", "1", -3, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.token, tt.count)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q, %d) = %v, want %v", tt.token, tt.count, got, tt.want)
			}
		})
	}
}

func TestParseEveryIndex(t *testing.T) {
	for count := 0; count <= 20; count++ {
		for k := 1; k <= count; k++ {
			got := Parse(strconv.Itoa(k), count)
			if len(got) != 1 || got[0] != k-1 {
				t.Fatalf("Parse(%d, %d) = %v, want [%d]", k, count, got, k-1)
			}
		}
		if got := Parse("0", count); len(got) != 0 {
			t.Fatalf("Parse(0, %d) = %v, want empty", count, got)
		}
		if got := Parse(strconv.Itoa(count+1), count); len(got) != 0 {
			t.Fatalf("Parse(%d, %d) = %v, want empty", count+1, count, got)
		}
	}
}
