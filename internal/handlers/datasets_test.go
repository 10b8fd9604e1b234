package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"green_index/internal/models"
	"green_index/internal/service"
	"green_index/internal/tabular"
)

const uploadCSV = "timestamp,zone,category,value,source\n2024-01-15,Block A,energy,120,meter\n"

func TestDatasetHandlers_UploadRawBody(t *testing.T) {
	ds := &mockDataset{result: models.ProcessedResult{UploadID: "u1", TotalRows: 1, ValidRows: 1}}
	s := &service.Service{Dataset: ds}

	w := post(t, s, "/api/v1/datasets", "text/csv", []byte(uploadCSV))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if ds.lastText != uploadCSV {
		t.Fatalf("service got %q", ds.lastText)
	}
	var res models.ProcessedResult
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.UploadID != "u1" || res.ValidRows != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestDatasetHandlers_UploadMultipart(t *testing.T) {
	ds := &mockDataset{}
	s := &service.Service{Dataset: ds}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "campus.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = fw.Write([]byte(uploadCSV))
	_ = mw.Close()

	w := post(t, s, "/api/v1/datasets", mw.FormDataContentType(), buf.Bytes())
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if ds.lastText != uploadCSV {
		t.Fatalf("service got %q", ds.lastText)
	}

	// multipart without the file field
	buf.Reset()
	mw = multipart.NewWriter(&buf)
	_ = mw.WriteField("other", "x")
	_ = mw.Close()
	if w := post(t, s, "/api/v1/datasets", mw.FormDataContentType(), buf.Bytes()); w.Code != http.StatusBadRequest {
		t.Fatalf("missing file: status=%d", w.Code)
	}
}

func TestDatasetHandlers_UploadRejected(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"missing columns", &tabular.MissingColumnsError{Columns: []string{"zone"}}},
		{"no rows", tabular.ErrNoDataRows},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &service.Service{Dataset: &mockDataset{ingestErr: tc.err}}
			w := post(t, s, "/api/v1/datasets", "text/csv", []byte("timestamp\n"))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d, want 400", w.Code)
			}
			if !strings.Contains(w.Body.String(), tc.err.Error()) {
				t.Fatalf("body %s does not carry %q", w.Body.String(), tc.err.Error())
			}
		})
	}
}

func TestDatasetHandlers_Queries(t *testing.T) {
	ds := &mockDataset{
		rows:  []models.CSVRow{{Zone: "Block A", Category: "energy", Value: 120}},
		stats: models.Statistics{TotalRecords: 1},
		board: models.Leaderboard{Blocks: []models.LeaderboardEntry{{Rank: 1, Name: "Block A", Score: 80}}},
		index: 80,
	}
	s := &service.Service{Dataset: ds}

	w := get(t, s, "/api/v1/datasets/rows?category=energy&zone=Block+A")
	if w.Code != http.StatusOK {
		t.Fatalf("rows status=%d", w.Code)
	}
	if ds.lastFilter != (service.RowFilter{Category: "energy", Zone: "Block A"}) {
		t.Fatalf("filter=%+v", ds.lastFilter)
	}

	w = get(t, s, "/api/v1/datasets/statistics")
	var stats models.Statistics
	_ = json.Unmarshal(w.Body.Bytes(), &stats)
	if stats.TotalRecords != 1 {
		t.Fatalf("stats=%+v", stats)
	}

	w = get(t, s, "/api/v1/datasets/leaderboard")
	var lb models.Leaderboard
	_ = json.Unmarshal(w.Body.Bytes(), &lb)
	if len(lb.Blocks) != 1 || lb.Blocks[0].Name != "Block A" {
		t.Fatalf("leaderboard=%+v", lb)
	}

	w = get(t, s, "/api/v1/datasets/green-index")
	var gi struct {
		GreenIndex int `json:"green_index"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &gi)
	if gi.GreenIndex != 80 {
		t.Fatalf("green_index=%d", gi.GreenIndex)
	}

	w = get(t, s, "/api/v1/datasets/category-scores")
	if !strings.Contains(w.Body.String(), `"category_scores":null`) {
		t.Fatalf("expected null scores, body=%s", w.Body.String())
	}
}

func TestDatasetHandlers_ExportAndClear(t *testing.T) {
	ds := &mockDataset{exportErr: service.ErrEmptyDataset}
	s := &service.Service{Dataset: ds}

	if w := get(t, s, "/api/v1/datasets/export"); w.Code != http.StatusNotFound {
		t.Fatalf("empty export: status=%d", w.Code)
	}

	ds.exportErr = nil
	ds.export = uploadCSV
	w := get(t, s, "/api/v1/datasets/export")
	if w.Code != http.StatusOK || w.Body.String() != uploadCSV {
		t.Fatalf("export status=%d body=%q", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content-type=%q", ct)
	}

	w = httptest.NewRecorder()
	newTestRouter(s).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/datasets", nil))
	if w.Code != http.StatusOK || ds.cleared != 1 {
		t.Fatalf("clear status=%d, cleared=%d", w.Code, ds.cleared)
	}
}
