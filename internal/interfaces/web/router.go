package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/scheduler-admin/internal/chrome"
	"github.com/jhoicas/scheduler-admin/internal/infrastructure/upstream"
	"github.com/jhoicas/scheduler-admin/internal/listing"
	"github.com/jhoicas/scheduler-admin/internal/session"
	"github.com/jhoicas/scheduler-admin/pkg/config"
	"github.com/jhoicas/scheduler-admin/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions     *session.Store
	Chrome       *chrome.Store
	Cookie       config.SessionConfig
	Auth         *upstream.AuthClient
	Inventory    *upstream.InventoryClient
	Requisitions *upstream.RequisitionClient
	Log          *logger.Logger
}

// Router registra las rutas del cliente de administración.
func Router(app *fiber.App, deps RouterDeps) {
	base := &Base{
		Chrome:   deps.Chrome,
		Sessions: deps.Sessions,
		Cookie:   deps.Cookie,
		Log:      deps.Log,
	}

	// Cachés de datos de referencia compartidas entre pantallas.
	roles := listing.NewRef("roles", deps.Log, deps.Auth.Roles)
	productTypes := listing.NewRef("product_types", deps.Log, deps.Inventory.ProductTypes)
	warehouses := listing.NewRef("warehouses", deps.Log, deps.Inventory.Warehouses)
	products := listing.NewRef("products", deps.Log, deps.Inventory.AllProducts)

	sessionHandler := NewSessionHandler(base, deps.Auth)
	dashboardHandler := NewDashboardHandler(base, deps.Requisitions, products)
	usersHandler := NewUsersHandler(base, deps.Auth)
	rolesHandler := NewRolesHandler(base, deps.Auth, roles)
	productsHandler := NewProductsHandler(base, deps.Inventory, productTypes)
	productTypesHandler := NewProductTypesHandler(base, productTypes)
	stocksHandler := NewStocksHandler(base, deps.Inventory, warehouses, products)
	profileHandler := NewProfileHandler(base, deps.Auth)

	app.Use(ResolveSession(deps.Sessions, deps.Cookie))

	// Páginas de sesión (solo anónimos). El guard va ruta a ruta: un grupo
	// con prefijo "/" montaría el middleware sobre todas las rutas.
	anon := RequireAnonymous(deps.Sessions)
	app.Get("/", anon, sessionHandler.LoginPage)
	app.Get("/register", anon, sessionHandler.RegisterPage)
	app.Get("/forgot-password", anon, sessionHandler.ForgotPasswordPage)
	app.Get("/reset-password", anon, sessionHandler.ResetPasswordPage)
	app.Post("/sessions/login", anon, sessionHandler.Login)
	app.Post("/sessions/register", anon, sessionHandler.Register)
	app.Post("/sessions/forgot-password", anon, sessionHandler.ForgotPassword)
	app.Post("/sessions/reset-password", anon, sessionHandler.ResetPassword)

	// Rutas protegidas: todo lo registrado a partir de aquí pasa por el guard.
	app.Use(RequireSession(deps.Sessions))
	app.Post("/sessions/logout", sessionHandler.Logout)

	app.Get("/dashboard", dashboardHandler.Index)
	app.Post("/dashboard/requisitions", dashboardHandler.Create)
	app.Get("/dashboard/export.pdf", dashboardHandler.ExportPDF)

	app.Get("/users", usersHandler.Index)
	app.Post("/users/:id/edit", usersHandler.Update)
	app.Post("/users/:id/delete", usersHandler.Delete)

	app.Get("/roles", rolesHandler.Index)
	app.Post("/roles/assign", rolesHandler.Assign)

	inventory := app.Group("/inventory")
	inventory.Get("/products", productsHandler.Index)
	inventory.Get("/product_types", productTypesHandler.Index)
	inventory.Get("/stocks", stocksHandler.Index)
	inventory.Post("/stocks", stocksHandler.Create)
	inventory.Post("/stocks/update", stocksHandler.Update)
	inventory.Post("/stocks/delete", stocksHandler.Delete)

	app.Get("/profile", profileHandler.Index)
	app.Post("/profile", profileHandler.Update)
}
