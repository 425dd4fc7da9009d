package handlers

import "net/http"

// ledgerUpdatedEvent tells the dashboard to reload after a ledger write.
const ledgerUpdatedEvent = "ledger-updated"

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" || r.Header.Get("HX-Boosted") == "true"
}

func triggerHTMX(w http.ResponseWriter, event string) {
	w.Header().Set("HX-Trigger", event)
}
