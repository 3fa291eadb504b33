package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"elearning-marketplace/internal/middleware"
	"elearning-marketplace/internal/models"
	"elearning-marketplace/internal/services"

	"github.com/gorilla/sessions"
)

const (
	toastSuccess = "success"
	toastError   = "error"

	sessionMaxAge = 86400 * 7 // 7 days
)

// NewSessionStore creates the cookie store backing storefront sessions.
// secure should be false only when the storefront is served over plain HTTP.
func NewSessionStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Toast is a one-shot message kept in the session until the next read
type Toast struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type cartView struct {
	Cart   *models.Cart `json:"cart"`
	Toasts []Toast      `json:"toasts"`
}

// StorefrontHandler is the buyer-facing side: it keeps the cart and the
// API token in the session and talks to the API through a connector.
type StorefrontHandler struct {
	api   services.Connector
	store sessions.Store
}

// NewStorefrontHandler creates a new storefront handler
func NewStorefrontHandler(api services.Connector, store sessions.Store) *StorefrontHandler {
	return &StorefrontHandler{api: api, store: store}
}

// Login handles POST /login (form fields email, password). An unreadable
// session cookie is replaced rather than rejected.
func (h *StorefrontHandler) Login(w http.ResponseWriter, r *http.Request) {
	session, _ := h.store.Get(r, middleware.SessionName)

	resp, err := h.api.Do(r.Context(), services.APIRequest{
		Method: http.MethodPost,
		URL:    "/auth/login",
		Body: models.LoginRequest{
			Email:    strings.TrimSpace(r.FormValue("email")),
			Password: r.FormValue("password"),
		},
	})
	if err != nil {
		h.handleAPIError(w, err)
		return
	}

	var envelope struct {
		Data models.LoginData `json:"data"`
	}
	if err := resp.Decode(&envelope); err != nil || envelope.Data.Token == "" || envelope.Data.User == nil {
		writeError(w, http.StatusBadGateway, "Unexpected response from the marketplace API")
		return
	}

	details := envelope.Data.User.Details()
	userJSON, err := json.Marshal(details)
	if err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	session.Values[middleware.SessionTokenKey] = envelope.Data.Token
	session.Values[middleware.SessionUserKey] = string(userJSON)
	if err := session.Save(r, w); err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Logged in", details)
}

// Logout handles POST /logout
func (h *StorefrontHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.store.Get(r, middleware.SessionName)
	session.Values = make(map[any]any)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		h.handleSessionError(w, r, err)
		return
	}
	handleRedirect(w, r, "/", http.StatusSeeOther)
}

// ViewCart handles GET /cart. Pending toasts are returned and cleared.
func (h *StorefrontHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	view := cartView{Cart: getCartFromSession(session), Toasts: popToasts(session)}
	if err := session.Save(r, w); err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", view)
}

// AddToCart handles POST /cart/add (form field course_id)
func (h *StorefrontHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(r.FormValue("course_id"), 10, 64)
	if err != nil || courseID <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	resp, err := h.api.Do(r.Context(), services.APIRequest{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("/course/%d", courseID),
	})
	if err != nil {
		h.handleAPIError(w, err)
		return
	}

	var envelope struct {
		Data models.Course `json:"data"`
	}
	if err := resp.Decode(&envelope); err != nil {
		writeError(w, http.StatusBadGateway, "Unexpected response from the marketplace API")
		return
	}

	cart := getCartFromSession(session)
	if err := cart.Add(envelope.Data.ToCartCourse()); err != nil {
		writeError(w, statusForError(err), "Course is already in your cart")
		return
	}

	saveCartToSession(session, cart)
	addToast(session, toastSuccess, "Course added to cart")
	if err := session.Save(r, w); err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Course added to cart", cartView{Cart: cart})
}

// RemoveFromCart handles POST /cart/remove (form field course_id)
func (h *StorefrontHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(r.FormValue("course_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	cart := getCartFromSession(session)
	if !cart.Remove(courseID) {
		writeError(w, http.StatusNotFound, "Course is not in your cart")
		return
	}

	saveCartToSession(session, cart)
	addToast(session, toastSuccess, "Course removed from cart")
	if err := session.Save(r, w); err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Course removed from cart", cartView{Cart: cart})
}

// Checkout handles POST /cart/checkout. It buys every course in the cart.
// On success the cart is reset and the client is redirected to the
// enrolled-courses page; on failure the cart is kept and the reply carries
// the error toast.
func (h *StorefrontHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	cart := getCartFromSession(session)
	if cart.IsEmpty() {
		addToast(session, toastError, "Your cart is empty")
		if err := session.Save(r, w); err != nil {
			h.handleSessionError(w, r, err)
			return
		}
		handleRedirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	var redirectTo string
	purchase := services.NewPurchaseService(h.api, newSessionNotifier(session))
	result := purchase.BuyCourse(r.Context(), services.PurchaseRequest{
		Token:       middleware.GetTokenFromContext(r.Context()),
		Courses:     cart.CourseIDs(),
		UserDetails: getUserFromSession(session),
	},
		func(path string) { redirectTo = path },
		func(action services.Action) {
			if action == services.ResetCart {
				cart.Reset()
			}
		},
	)

	saveCartToSession(session, cart)

	if result.Success {
		if err := session.Save(r, w); err != nil {
			h.handleSessionError(w, r, err)
			return
		}
		handleRedirect(w, r, redirectTo, http.StatusSeeOther)
		return
	}

	view := cartView{Cart: cart, Toasts: popToasts(session)}
	if err := session.Save(r, w); err != nil {
		h.handleSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.APIResponse{Success: false, Message: result.Message, Data: view})
}

// EnrolledCourses handles GET /dashboard/enrolled-courses
func (h *StorefrontHandler) EnrolledCourses(w http.ResponseWriter, r *http.Request) {
	resp, err := h.api.Do(r.Context(), services.APIRequest{
		Method: http.MethodGet,
		URL:    "/profile/getEnrolledCourses",
		Headers: map[string]string{
			"Authorization": "Bearer " + middleware.GetTokenFromContext(r.Context()),
		},
	})
	if err != nil {
		h.handleAPIError(w, err)
		return
	}

	envelope, err := resp.Envelope()
	if err != nil {
		writeError(w, http.StatusBadGateway, "Unexpected response from the marketplace API")
		return
	}
	writeJSON(w, http.StatusOK, envelope)
}

func (h *StorefrontHandler) handleAPIError(w http.ResponseWriter, err error) {
	var statusErr *services.StatusError
	if errors.As(err, &statusErr) {
		writeError(w, statusErr.StatusCode, statusErr.Message)
		return
	}
	log.Printf("marketplace API unreachable: %v", err)
	writeError(w, http.StatusBadGateway, "Could not reach the marketplace API")
}

func (h *StorefrontHandler) handleSessionError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("[%s] session error: %v", middleware.GetRequestID(r.Context()), err)
	writeError(w, http.StatusInternalServerError, "Session error. Please refresh the page and try again.")
}

// Session helpers

func getCartFromSession(session *sessions.Session) *models.Cart {
	cartJSON, ok := session.Values[middleware.SessionCartKey].(string)
	if !ok {
		return &models.Cart{}
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(cartJSON), &cart); err != nil {
		return &models.Cart{}
	}
	return &cart
}

func saveCartToSession(session *sessions.Session, cart *models.Cart) {
	cartJSON, err := json.Marshal(cart)
	if err != nil {
		return
	}
	session.Values[middleware.SessionCartKey] = string(cartJSON)
}

func getUserFromSession(session *sessions.Session) models.UserDetails {
	var details models.UserDetails
	if userJSON, ok := session.Values[middleware.SessionUserKey].(string); ok {
		if err := json.Unmarshal([]byte(userJSON), &details); err != nil {
			log.Printf("session error: unreadable user: %v", err)
		}
	}
	return details
}

func addToast(session *sessions.Session, kind, message string) {
	toastJSON, err := json.Marshal(Toast{Type: kind, Message: message})
	if err != nil {
		return
	}
	session.AddFlash(string(toastJSON))
}

func popToasts(session *sessions.Session) []Toast {
	toasts := []Toast{}
	for _, flash := range session.Flashes() {
		raw, ok := flash.(string)
		if !ok {
			continue
		}
		var toast Toast
		if err := json.Unmarshal([]byte(raw), &toast); err == nil {
			toasts = append(toasts, toast)
		}
	}
	return toasts
}

// sessionNotifier turns purchase notifications into session toasts.
// Loading toasts only live for the duration of the request.
type sessionNotifier struct {
	session *sessions.Session
	loading map[string]string
	seq     int
}

func newSessionNotifier(session *sessions.Session) *sessionNotifier {
	return &sessionNotifier{session: session, loading: make(map[string]string)}
}

func (n *sessionNotifier) Loading(message string) string {
	n.seq++
	id := fmt.Sprintf("loading-%d", n.seq)
	n.loading[id] = message
	return id
}

func (n *sessionNotifier) Success(message string) { addToast(n.session, toastSuccess, message) }
func (n *sessionNotifier) Error(message string)   { addToast(n.session, toastError, message) }
func (n *sessionNotifier) Dismiss(id string)      { delete(n.loading, id) }
