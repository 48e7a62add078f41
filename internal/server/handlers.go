package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cookable/cookable/internal/models"
)

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req models.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("recommend request",
		zap.Int("ingredients", len(req.UserIngredients)),
		zap.Int("top_n", req.TopN),
	)
	resp, err := s.engine.Current().Match(&req)
	if err != nil {
		var ie *models.InvalidInputError
		if errors.As(err, &ie) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("recommend failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid recipe name")
		return
	}
	recipe := s.engine.Current().Recipe(name)
	if recipe == nil {
		s.respondError(w, http.StatusNotFound, "recipe not found")
		return
	}
	s.respondJSON(w, http.StatusOK, recipe)
}

func (s *Server) handleRecipeSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		if n > 100 {
			n = 100
		}
		limit = n
	}

	s.indexMu.RLock()
	index := s.recipeIndex
	s.indexMu.RUnlock()
	if index == nil {
		s.respondError(w, http.StatusServiceUnavailable, "recipe index not ready")
		return
	}

	hits, err := index.Search(query, limit)
	if err != nil {
		s.logger.Error("recipe search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	model := s.engine.Current()
	results := make([]*models.RecipeHit, 0, len(hits))
	for _, hit := range hits {
		if recipe := model.Recipe(hit.Name); recipe != nil {
			results = append(results, &models.RecipeHit{Recipe: recipe, Score: hit.Score})
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": results,
	})
}

func (s *Server) handleClusters(w http.ResponseWriter, r *http.Request) {
	model := s.engine.Current()
	summaries := model.ClusterSummaries()
	if summaries == nil {
		s.respondError(w, http.StatusNotFound, "model is not clustered")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"n_clusters": model.NumClusters(),
		"clusters":   summaries,
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("reload request")
	if err := s.Reload(); err != nil {
		s.logger.Error("reload failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	model := s.engine.Current()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "reloaded",
		"recipes":  len(model.Recipes()),
		"built_at": model.BuiltAt(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	model := s.engine.Current()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"recipes":         len(model.Recipes()),
		"vocabulary_size": len(model.Vocabulary()),
		"n_clusters":      model.NumClusters(),
		"clustered":       model.Clustered(),
		"built_at":        model.BuiltAt(),
		"config": map[string]interface{}{
			"dataset_path": s.config.Storage.DatasetPath,
			"random_seed":  s.config.Clustering.RandomSeed,
			"n_init":       s.config.Clustering.NInit,
			"max_iter":     s.config.Clustering.MaxIter,
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
