package router

import (
	"net/http"
	"strings"

	"skip-checkout/app/controller"
)

type Controllers struct {
	Checkout  *controller.CheckoutController
	SkipImage *controller.SkipImageController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Skip card images
	mux.HandleFunc("/skips/image", controllers.SkipImage.GetImage)

	// Mount a checkout session
	mux.HandleFunc("/checkout/sessions", controllers.Checkout.CreateSession)

	// Session actions: /checkout/sessions/:id[/action]
	mux.HandleFunc("/checkout/sessions/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/checkout/sessions/"), "/")
		if path == "" {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		id, action, _ := strings.Cut(path, "/")
		if strings.Contains(action, "/") {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		switch action {
		case "":
			if r.Method == http.MethodGet {
				controllers.Checkout.GetSession(w, r, id)
			} else if r.Method == http.MethodDelete {
				controllers.Checkout.DeleteSession(w, r, id)
			} else {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
		case "quote":
			if r.Method != http.MethodGet {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			controllers.Checkout.Quote(w, r, id)
		case "select", "clear", "continue", "back":
			if r.Method != http.MethodPost {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			switch action {
			case "select":
				controllers.Checkout.SelectSkip(w, r, id)
			case "clear":
				controllers.Checkout.ClearSelection(w, r, id)
			case "continue":
				controllers.Checkout.Continue(w, r, id)
			case "back":
				controllers.Checkout.Back(w, r, id)
			}
		default:
			http.Error(w, "Not found", http.StatusNotFound)
		}
	})
}
