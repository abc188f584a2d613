package encoder

import (
	"bytes"
	"encoding/csv"
	"sync"
	"testing"

	"exportapi/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCSV_Encode(t *testing.T) {
	tests := []struct {
		name string
		doc  *model.Document
		want string
	}{
		{
			name: "simple",
			doc: &model.Document{
				Format:  model.FormatCSV,
				Headers: []string{"Name", "Age"},
				Rows:    [][]string{{"Ann", "30"}, {"Ben", "41"}},
			},
			want: "Name,Age\nAnn,30\nBen,41\n",
		},
		{
			name: "escaping",
			doc: &model.Document{
				Headers: []string{"Quote", "Comma", "Break"},
				Rows:    [][]string{{`say "hi"`, "a,b", "line1\nline2"}},
			},
			want: "Quote,Comma,Break\n\"say \"\"hi\"\"\",\"a,b\",\"line1\nline2\"\n",
		},
		{
			name: "custom delimiter",
			doc: &model.Document{
				Headers: []string{"A", "B"},
				Rows:    [][]string{{"1;2", "3,4"}},
				Options: &model.Options{Delimiter: ptr(";")},
			},
			want: "A;B\n\"1;2\";3,4\n",
		},
		{
			name: "header row excluded",
			doc: &model.Document{
				Headers: []string{"A"},
				Rows:    [][]string{{"x"}, {"y"}},
				Options: &model.Options{IncludeHeaderRow: ptr(false)},
			},
			want: "x\ny\n",
		},
		{
			name: "single empty field is quoted",
			doc: &model.Document{
				Headers: []string{"A"},
				Rows:    [][]string{{""}, {"x"}},
			},
			want: "A\n\"\"\nx\n",
		},
		{
			name: "utf-8 passthrough",
			doc: &model.Document{
				Headers: []string{"ชื่อ"},
				Rows:    [][]string{{"Zoë"}},
			},
			want: "ชื่อ\nZoë\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewCSV().Encode(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	for _, delim := range []string{",", ";", "\t", "|"} {
		t.Run(delim, func(t *testing.T) {
			doc := &model.Document{
				Headers: []string{"plain", "with delim " + delim, `with "quotes"`},
				Rows: [][]string{
					{"a", "b" + delim + "c", "multi\nline"},
					{"", " leading space", `""`},
				},
				Options: &model.Options{Delimiter: ptr(delim)},
			}

			out, err := NewCSV().Encode(doc)
			require.NoError(t, err)

			r := csv.NewReader(bytes.NewReader(out))
			r.Comma = []rune(delim)[0]
			records, err := r.ReadAll()
			require.NoError(t, err)
			require.Len(t, records, 3)
			assert.Equal(t, doc.Headers, records[0])
			assert.Equal(t, doc.Rows, records[1:])
		})
	}
}

func TestCSV_RoundTripSingleColumn(t *testing.T) {
	doc := &model.Document{
		Headers: []string{"A"},
		Rows:    [][]string{{""}, {"x"}, {""}},
	}

	out, err := NewCSV().Encode(doc)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, doc.Headers, records[0])
	assert.Equal(t, doc.Rows, records[1:])
}

func TestCSV_InvalidDelimiter(t *testing.T) {
	doc := &model.Document{
		Headers: []string{"A"},
		Rows:    [][]string{{"x"}},
		Options: &model.Options{Delimiter: ptr(`"`)},
	}

	_, err := NewCSV().Encode(doc)
	var ee *Error
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, model.FormatCSV, ee.Format)
}

func TestCSV_Concurrent(t *testing.T) {
	enc := NewCSV()
	docs := []*model.Document{
		{Headers: []string{"A"}, Rows: [][]string{{"1"}}},
		{Headers: []string{"B", "C"}, Rows: [][]string{{"2", "3"}}},
	}
	want := []string{"A\n1\n", "B,C\n2,3\n"}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := enc.Encode(docs[i%2])
			assert.NoError(t, err)
			assert.Equal(t, want[i%2], string(out))
		}(i)
	}
	wg.Wait()
}
