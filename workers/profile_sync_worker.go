// workers/profile_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"flavorquest-system/models"
	"flavorquest-system/store"
)

// RemoteProfile matches the JSON shape of the profile service's public
// endpoint.
type RemoteProfile struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email,omitempty"`
	Photo       string    `json:"photo,omitempty"`
	Dietary     []string  `json:"dietary,omitempty"`
	IsAdmin     bool      `json:"is_admin"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type listProfilesResponse struct {
	Users []RemoteProfile `json:"users"`
}

// ProfileSyncWorker mirrors remote auth/profile accounts into the local
// user store so feed rendering and dietary-aware generation never call the
// profile service on the request path. Demo mode runs without it.
type ProfileSyncWorker struct {
	store        store.UserStore
	interval     time.Duration
	baseURL      string
	serviceToken string
	httpClient   *http.Client
}

func NewProfileSyncWorker(st store.UserStore, baseURL, serviceToken string) *ProfileSyncWorker {
	return &ProfileSyncWorker{
		store:        st,
		interval:     1 * time.Minute,
		baseURL:      baseURL,
		serviceToken: serviceToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (w *ProfileSyncWorker) Start(ctx context.Context) {
	log.Println("[PROFILE_SYNC] starting profile sync worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// First pass immediately so a fresh deploy has users before the first tick.
	if err := w.syncOnce(ctx); err != nil {
		log.Printf("[PROFILE_SYNC] initial sync failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("[PROFILE_SYNC] stopping profile sync worker")
			return
		case <-ticker.C:
			if err := w.syncOnce(ctx); err != nil {
				log.Printf("[PROFILE_SYNC] sync failed: %v", err)
			}
		}
	}
}

func (w *ProfileSyncWorker) syncOnce(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL, nil)
	if err != nil {
		return fmt.Errorf("build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.serviceToken)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call profile service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("profile service returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed listProfilesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode profile response: %w", err)
	}

	synced := 0
	for _, p := range parsed.Users {
		u := models.AppUser{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			Email:       p.Email,
			Photo:       p.Photo,
			Dietary:     p.Dietary,
			IsAdmin:     p.IsAdmin,
		}
		if err := w.store.UpsertUser(ctx, u); err != nil {
			log.Printf("[PROFILE_SYNC] upsert %s failed: %v", p.ID, err)
			continue
		}
		synced++
	}
	if synced > 0 {
		log.Printf("[PROFILE_SYNC] mirrored %d profiles", synced)
	}
	return nil
}
