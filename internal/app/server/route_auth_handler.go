package server

import (
	"encoding/json"
	"net/http"

	"corkboard/internal/api/dto"
	"corkboard/internal/auth"
	"corkboard/internal/database"
	"corkboard/internal/support"
)

func adminLogin(w http.ResponseWriter, r *http.Request) {
	var credentials dto.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	admin, err := database.GetAdminByEmail(credentials.Email)
	if err != nil {
		writeError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if !support.CheckPasswordHash(credentials.Password, admin.Password) {
		writeError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateJWT(admin.ID)
	if err != nil {
		writeError(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
