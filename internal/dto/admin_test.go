package dto

import "testing"

func TestClampPage(t *testing.T) {
	cases := map[string]struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		"defaults":       {limit: 0, offset: 0, wantLimit: DefaultPageLimit, wantOffset: 0},
		"negative limit": {limit: -5, offset: 40, wantLimit: DefaultPageLimit, wantOffset: 40},
		"capped":         {limit: 500, offset: 0, wantLimit: MaxPageLimit, wantOffset: 0},
		"negative skip":  {limit: 10, offset: -3, wantLimit: 10, wantOffset: 0},
		"within bounds":  {limit: MaxPageLimit, offset: 7, wantLimit: MaxPageLimit, wantOffset: 7},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			limit, offset := ClampPage(tc.limit, tc.offset)
			if limit != tc.wantLimit || offset != tc.wantOffset {
				t.Fatalf("ClampPage(%d, %d) = %d, %d; want %d, %d", tc.limit, tc.offset, limit, offset, tc.wantLimit, tc.wantOffset)
			}
		})
	}
}
