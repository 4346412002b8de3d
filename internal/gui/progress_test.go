package gui

import "testing"

type fakeDialog struct {
	texts  []string
	values []int
}

func (f *fakeDialog) Text(s string) error {
	f.texts = append(f.texts, s)
	return nil
}

func (f *fakeDialog) Value(v int) error {
	f.values = append(f.values, v)
	return nil
}

func TestProgressSinkReportsPercent(t *testing.T) {
	fake := &fakeDialog{}
	sink := &ProgressSink{dlg: fake, percent: -1}

	sink.Progress(0, 4)
	sink.Progress(1, 4)
	sink.Progress(1, 4)
	sink.Progress(4, 4)

	if len(fake.texts) != 4 {
		t.Fatalf("got %d text updates, want 4", len(fake.texts))
	}
	if fake.texts[1] != "Converted 1 of 4 files" {
		t.Fatalf("text = %q", fake.texts[1])
	}
	want := []int{0, 25, 100}
	if len(fake.values) != len(want) {
		t.Fatalf("values = %v, want %v", fake.values, want)
	}
	for i := range want {
		if fake.values[i] != want[i] {
			t.Fatalf("values = %v, want %v", fake.values, want)
		}
	}
	sink.Close()
}

func TestPercent(t *testing.T) {
	cases := []struct{ done, total, want int }{
		{0, 0, 0},
		{1, 3, 33},
		{3, 3, 100},
		{4, 3, 100},
	}
	for _, tc := range cases {
		if got := percent(tc.done, tc.total); got != tc.want {
			t.Errorf("percent(%d, %d) = %d, want %d", tc.done, tc.total, got, tc.want)
		}
	}
}
