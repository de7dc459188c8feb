package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"p9e.in/brokerdesk/handlers"
	"p9e.in/brokerdesk/middleware"
	"p9e.in/brokerdesk/models"
)

var (
	backOffice = []string{string(models.RoleAdmin), string(models.RoleStaff), string(models.RoleBroker)}
	readers    = []string{string(models.RoleAdmin), string(models.RoleStaff), string(models.RoleBroker), string(models.RoleGuest)}
	adminOnly  = []string{string(models.RoleAdmin)}
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.SecurityMiddleware)
	api.Use(middleware.JWTMiddleware)

	api.HandleFunc("/profile", handleProfile).Methods("GET")
	api.HandleFunc("/change-password", handlers.ChangePassword).Methods("POST")

	// Inventory: the one resource with a hard delete verb
	registerCRUDRoutes(api, "/inventory", crudHandlers{
		getAll:    handlers.GetAllInventory,
		create:    handlers.CreateInventory,
		getOne:    handlers.GetInventory,
		update:    handlers.UpdateInventory,
		delete:    handlers.DeleteInventory,
		setStatus: handlers.SetInventoryStatus,
	})
	api.Handle("/inventory/import", middleware.RequireRole(backOffice...)(
		http.HandlerFunc(handlers.ImportInventory))).Methods("POST")
	api.Handle("/inventory/export", middleware.RequireRole(readers...)(
		http.HandlerFunc(handlers.ExportInventory))).Methods("GET")
	api.Handle("/inventory/{id}/audit", middleware.RequireRole(backOffice...)(
		http.HandlerFunc(handlers.GetAuditLog))).Methods("GET")

	// Requirements: soft-managed via status, no delete
	registerCRUDRoutes(api, "/requirements", crudHandlers{
		getAll:    handlers.GetAllRequirements,
		create:    handlers.CreateRequirement,
		getOne:    handlers.GetRequirement,
		update:    handlers.UpdateRequirement,
		setStatus: handlers.SetRequirementStatus,
	})
	api.Handle("/requirements/{id}/flags/{flag}", middleware.RequireRole(backOffice...)(
		http.HandlerFunc(handlers.ToggleRequirementFlag))).Methods("PUT")
	api.Handle("/requirements/{id}/recommended", middleware.RequireRole(backOffice...)(
		http.HandlerFunc(handlers.GetRecommendedProperties))).Methods("GET")
	api.Handle("/requirements/{id}/audit", middleware.RequireRole(backOffice...)(
		http.HandlerFunc(handlers.GetAuditLog))).Methods("GET")

	// Deals
	registerCRUDRoutes(api, "/deals", crudHandlers{
		getAll:    handlers.GetAllDeals,
		create:    handlers.CreateDeal,
		getOne:    handlers.GetDeal,
		update:    handlers.UpdateDeal,
		setStatus: handlers.SetDealStatus,
	})

	// =====================================================
	// Admin Routes (user management)
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Handle("/users", middleware.RequireRole(adminOnly...)(
		http.HandlerFunc(handlers.GetAllUsers))).Methods("GET")
	admin.Handle("/users", middleware.RequireRole(adminOnly...)(
		http.HandlerFunc(handlers.Register))).Methods("POST")
	admin.Handle("/users/{id}", middleware.RequireRole(adminOnly...)(
		http.HandlerFunc(handlers.GetUserByID))).Methods("GET")
	admin.Handle("/users/{id}", middleware.RequireRole(adminOnly...)(
		http.HandlerFunc(handlers.UpdateUser))).Methods("PUT")
	admin.Handle("/users/{id}/disable", middleware.RequireRole(adminOnly...)(
		http.HandlerFunc(handlers.DisableUser))).Methods("POST")

	return r
}

// handleProfile returns the caller's identity as the UI shell needs it
func handleProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	response := map[string]interface{}{
		"userID": claims.UserID,
		"name":   claims.Name,
		"email":  claims.Email,
		"role":   claims.Role,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// crudHandlers holds handlers for a CRUD resource
type crudHandlers struct {
	getAll    func(http.ResponseWriter, *http.Request)
	create    func(http.ResponseWriter, *http.Request)
	getOne    func(http.ResponseWriter, *http.Request)
	update    func(http.ResponseWriter, *http.Request)
	delete    func(http.ResponseWriter, *http.Request)
	setStatus func(http.ResponseWriter, *http.Request)
}

// registerCRUDRoutes registers standard CRUD routes for a resource. Reads are
// open to guests; mutations need a back-office role; delete is admin-only.
func registerCRUDRoutes(router *mux.Router, path string, h crudHandlers) {
	router.Handle(path, middleware.RequireRole(readers...)(
		http.HandlerFunc(h.getAll))).Methods("GET")

	router.Handle(path, middleware.RequireRole(backOffice...)(
		http.HandlerFunc(h.create))).Methods("POST")

	router.Handle(path+"/{id}", middleware.RequireRole(readers...)(
		http.HandlerFunc(h.getOne))).Methods("GET")

	router.Handle(path+"/{id}", middleware.RequireRole(backOffice...)(
		http.HandlerFunc(h.update))).Methods("PUT")

	if h.delete != nil {
		router.Handle(path+"/{id}", middleware.RequireRole(adminOnly...)(
			http.HandlerFunc(h.delete))).Methods("DELETE")
	}

	if h.setStatus != nil {
		router.Handle(path+"/{id}/status", middleware.RequireRole(backOffice...)(
			http.HandlerFunc(h.setStatus))).Methods("PUT")
	}
}
