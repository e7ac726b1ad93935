package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/techstaffhub/attendance-kiosk/internal/config"
	appHTTP "github.com/techstaffhub/attendance-kiosk/internal/handler/http"
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/camera"
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/querycache"
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/session"
	editRequestService "github.com/techstaffhub/attendance-kiosk/internal/service/editrequest"
	notificationService "github.com/techstaffhub/attendance-kiosk/internal/service/notification"
	timeclockService "github.com/techstaffhub/attendance-kiosk/internal/service/timeclock"
	"github.com/techstaffhub/attendance-kiosk/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	sessions, err := session.NewStore(cfg.Session.FilePath)
	if err != nil {
		fmt.Println("Error opening session store:", err)
		return
	}

	timelogAPI := upstream.NewTimelogClient(upstream.NewClient(cfg.Upstream.TimelogBaseURL, sessions))
	editRequestAPI := upstream.NewEditRequestClient(upstream.NewClient(cfg.Upstream.EditRequestBaseURL, sessions))
	notificationAPI := upstream.NewNotificationClient(upstream.NewClient(cfg.Upstream.NotificationBaseURL, sessions))

	cache := querycache.New()

	timeclockSvc := timeclockService.NewTimeclockService(timelogAPI, cache)
	editRequestSvc := editRequestService.NewEditRequestService(editRequestAPI, cache)
	notificationSvc := notificationService.NewNotificationService(notificationAPI, cache)

	poller := timeclockService.NewStatusPoller(timeclockSvc.CurrentStatus, cfg.Poll.StatusInterval)
	poller.Start(context.Background())

	// A kiosk without a camera still serves reads and breaks; photo
	// actions fail with a clear error.
	var device camera.Device
	if cfg.Camera.SnapshotURL != "" {
		device = camera.NewSnapshotDevice(cfg.Camera.SnapshotURL, nil)
	}

	jwtAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)

	timeclockHandler := appHTTP.NewTimeclockHandler(timeclockSvc, poller, device)
	editRequestHandler := appHTTP.NewEditRequestHandler(editRequestSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtAuth,
		timeclockHandler,
		editRequestHandler,
		notificationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Kiosk agent running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
