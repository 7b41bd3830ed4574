package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"corkboard/internal/auth"
	"corkboard/internal/database"

	"github.com/charmbracelet/log"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PATCH, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := database.DB.DB()
	if err != nil || sqlDB.PingContext(r.Context()) != nil {
		writeError(w, "Service unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func OpenRoutes(port int) error {
	router := http.NewServeMux()

	router.HandleFunc("GET /health", healthCheck)
	router.HandleFunc("GET /brands/{brandNm}", getBrand)

	router.HandleFunc("GET /brands/{brandNm}/comments", listComments)
	router.HandleFunc("POST /brands/{brandNm}/comments", createComment)
	router.HandleFunc("POST /comments/{id}/replies", createReply)
	router.HandleFunc("DELETE /comments/{id}", deleteComment)

	router.HandleFunc("POST /admin/login", adminLogin)

	router.Handle("GET /admin/comments", auth.IsAdmin(http.HandlerFunc(adminListComments)))
	router.Handle("DELETE /admin/comments/{id}", auth.IsAdmin(http.HandlerFunc(adminForceDeleteComment)))
	router.Handle("POST /admin/comments/{id}/block-ip", auth.IsAdmin(http.HandlerFunc(blockCommentIP)))

	router.Handle("POST /admin/block-rules", auth.IsAdmin(http.HandlerFunc(createBlockRule)))
	router.Handle("GET /admin/block-rules", auth.IsAdmin(http.HandlerFunc(listBlockRules)))
	router.Handle("GET /admin/block-rules/{id}", auth.IsAdmin(http.HandlerFunc(getBlockRule)))
	router.Handle("PATCH /admin/block-rules/{id}", auth.IsAdmin(http.HandlerFunc(updateBlockRule)))
	router.Handle("DELETE /admin/block-rules/{id}", auth.IsAdmin(http.HandlerFunc(deleteBlockRule)))

	addr := fmt.Sprintf(":%d", port)
	log.Infof("Starting API server on %s", addr)
	return http.ListenAndServe(addr, enableCORS(router))
}
