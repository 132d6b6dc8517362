package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minhokang/docqa/internal/catalog"
	"github.com/minhokang/docqa/internal/pipeline"
	"github.com/minhokang/docqa/internal/vectordb"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

type ingestRequest struct {
	Text       string `json:"text"`
	Name       string `json:"name"`
	Owner      string `json:"owner,omitempty"`
	Department string `json:"department,omitempty"`
	Project    string `json:"project,omitempty"`
	Category   string `json:"category,omitempty"`
}

// handleIngest accepts a document as JSON, runs the ingestion pipeline and
// persists the index.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Text == "" || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text and name are required"})
		return
	}

	result, err := s.ingestor.Ingest(r.Context(), pipeline.IngestRequest{
		Text: req.Text,
		Meta: pipeline.DocumentMeta{
			Name:       req.Name,
			Owner:      req.Owner,
			Department: req.Department,
			Project:    req.Project,
			Category:   req.Category,
		},
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if err := s.store.Persist(r.Context(), s.cfg.DataDir); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.catalog.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if docs == nil {
		docs = []catalog.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := s.catalog.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleDeleteDocument removes a document from the catalog and drops its
// chunks from the vector index.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.catalog.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if err := s.store.DeleteByDocID(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if err := s.store.Persist(r.Context(), s.cfg.DataDir); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type queryRequest struct {
	Question      string `json:"question"`
	TopK          int    `json:"top_k,omitempty"`
	Department    string `json:"department,omitempty"`
	Project       string `json:"project,omitempty"`
	Category      string `json:"category,omitempty"`
	ChapterNumber string `json:"chapter_number,omitempty"`
	ArticleNumber string `json:"article_number,omitempty"`
}

func (req queryRequest) filter() *vectordb.Filter {
	f := vectordb.Filter{
		Department:    req.Department,
		Project:       req.Project,
		Category:      req.Category,
		ChapterNumber: req.ChapterNumber,
		ArticleNumber: req.ArticleNumber,
	}
	if f == (vectordb.Filter{}) {
		return nil
	}
	return &f
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Question == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "question is required"})
		return
	}

	ans, err := s.orchestrator.Answer(r.Context(), req.Question, pipeline.QueryOptions{
		TopK:   req.TopK,
		Filter: req.filter(),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, ans)
}

type statsResponse struct {
	Documents int `json:"documents"`
	Chunks    int `json:"chunks"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	docs, err := s.catalog.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Documents: len(docs),
		Chunks:    s.store.Count(),
	})
}
