// Command payment-flow-sim drives the booking and payment flow against a
// running portal: sign up, fetch a token, create a booking, then record a
// payment for it. Useful for smoke-testing a fresh deployment.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

func main() {
	var (
		baseURL   = flag.String("base-url", getenv("BASE_URL", "http://localhost:5000"), "portal base url")
		email     = flag.String("email", getenv("SIM_EMAIL", ""), "patient email")
		name      = flag.String("name", getenv("SIM_NAME", "Sim Patient"), "patient name")
		treatment = flag.String("treatment", getenv("SIM_TREATMENT", "Teeth Cleaning"), "treatment name")
		date      = flag.String("date", getenv("SIM_DATE", time.Now().UTC().Format("2006-01-02")), "appointment date")
		slot      = flag.String("slot", getenv("SIM_SLOT", "9.00 AM - 9.30 AM"), "appointment slot")
		price     = flag.Int("price", 80, "treatment price")
	)
	flag.Parse()

	if strings.TrimSpace(*email) == "" {
		fatal("SIM_EMAIL is required")
	}
	base := strings.TrimRight(*baseURL, "/")

	postJSON(base+"/users", "", map[string]any{"email": *email, "name": *name})

	var tok struct {
		AccessToken string `json:"accessToken"`
	}
	getJSON(base+"/jwt?email="+*email, &tok)
	if tok.AccessToken == "" {
		fatal("no token issued; is the user registered?")
	}

	var created struct {
		Acknowledge bool   `json:"acknowledge"`
		BookingID   string `json:"bookingId"`
		Message     string `json:"message"`
	}
	postJSON(base+"/bookings", tok.AccessToken, map[string]any{
		"email":           *email,
		"patientName":     *name,
		"treatment":       *treatment,
		"appointmentDate": *date,
		"slot":            *slot,
		"price":           *price,
	}, &created)
	if !created.Acknowledge {
		fatal("booking rejected: " + created.Message)
	}
	fmt.Printf("booking=%s\n", created.BookingID)

	var paid struct {
		Acknowledge bool   `json:"acknowledge"`
		PaymentID   string `json:"paymentId"`
	}
	postJSON(base+"/payment", tok.AccessToken, map[string]any{
		"bookingId":     created.BookingID,
		"email":         *email,
		"price":         *price,
		"transactionId": fmt.Sprintf("sim_%d", time.Now().UnixNano()),
	}, &paid)
	if !paid.Acknowledge {
		fatal("payment not recorded")
	}
	fmt.Printf("payment=%s\n", paid.PaymentID)
}

func postJSON(url, token string, body map[string]any, out ...any) {
	buf, err := json.Marshal(body)
	if err != nil {
		fatal(err.Error())
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		fatal(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	doJSON(req, out...)
}

func getJSON(url string, out ...any) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		fatal(err.Error())
	}
	doJSON(req, out...)
}

func doJSON(req *http.Request, out ...any) {
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fatal(err.Error())
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		fatal(err.Error())
	}
	fmt.Printf("%s %s status=%d\n", req.Method, req.URL.Path, resp.StatusCode)
	if len(out) > 0 {
		if err := json.Unmarshal(data, out[0]); err != nil {
			fatal(fmt.Sprintf("decode %s: %v", req.URL.Path, err))
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(2)
}
