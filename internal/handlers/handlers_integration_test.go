package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"supermart/internal/handlers"
	"supermart/internal/middleware"
	"supermart/internal/models"
	"supermart/internal/repositories"
	"supermart/internal/services"
	"supermart/internal/uploads"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test_jwt_secret"

// setupApp builds the full application over a fresh in-memory SQLite
// database and a per-test upload directory.
func setupApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	// _foreign_keys=on so the ON DELETE SET NULL constraints are enforced,
	// matching what openDatabase configures for the real store.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.Employee{},
		&models.User{},
		&models.Role{},
	))

	uploadDir := t.TempDir()
	fileSaver := uploads.NewSaver(uploadDir)

	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	customerRepo := repositories.NewGORMCustomerRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	orderItemRepo := repositories.NewGORMOrderItemRepository(db)
	employeeRepo := repositories.NewGORMEmployeeRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	authService := services.NewAuthService(userRepo, testJWTSecret, "supermart", "supermart-client")

	app := fiber.New()
	api := app.Group("/api")
	handlers.NewAuthHandler(authService).RegisterRoutes(api)

	protected := api.Group("", middleware.AuthRequired(authService))
	handlers.NewCategoryHandler(services.NewCategoryService(categoryRepo)).RegisterRoutes(protected)
	handlers.NewProductHandler(services.NewProductService(productRepo, fileSaver)).RegisterRoutes(protected)
	handlers.NewCustomerHandler(services.NewCustomerService(customerRepo)).RegisterRoutes(protected)
	handlers.NewOrderHandler(services.NewOrderService(orderRepo, fileSaver, nil)).RegisterRoutes(protected)
	handlers.NewOrderItemHandler(services.NewOrderItemService(orderItemRepo, fileSaver)).RegisterRoutes(protected)
	handlers.NewEmployeeHandler(services.NewEmployeeService(employeeRepo, fileSaver)).RegisterRoutes(protected)

	return app, uploadDir
}

// jsonRequest performs a JSON request, attaching the bearer token when set.
func jsonRequest(t *testing.T, app *fiber.App, method, url string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// formRequest performs a multipart form request, optionally attaching an
// image file, with the bearer token when set.
func formRequest(t *testing.T, app *fiber.App, method, url string, fields map[string]string, fileName string, fileContent []byte, token string) *http.Response {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func signUp(t *testing.T, app *fiber.App, userName string) *http.Response {
	t.Helper()
	return jsonRequest(t, app, http.MethodPost, "/api/Authentication/SignUp", map[string]string{
		"UserName": userName,
		"Email":    userName + "@example.com",
		"Password": "password123",
	}, "")
}

func login(t *testing.T, app *fiber.App, userName string) string {
	t.Helper()
	resp := jsonRequest(t, app, http.MethodPost, "/api/Authentication/login", map[string]string{
		"UserName": userName,
		"Password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp)
	token, ok := body["token"].(string)
	require.True(t, ok, "login response must carry a token")
	return token
}

// authToken registers a throwaway user and logs them in.
func authToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := signUp(t, app, "tester")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return login(t, app, "tester")
}

func tokenClaims(t *testing.T, tokenString string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

// TestMain suppresses handler logging for cleaner test output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestSignUpRolePolicy(t *testing.T) {
	app, _ := setupApp(t)

	// The very first user ever registered becomes Admin.
	resp := signUp(t, app, "alice")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp)
	assert.Equal(t, "Success", body["Status"])
	assert.Equal(t, "User Created Successfully", body["Message"])

	claims := tokenClaims(t, login(t, app, "alice"))
	assert.Equal(t, "alice", claims["username"])
	assert.Contains(t, claims["roles"], "Admin")

	// Every subsequent user becomes User.
	resp = signUp(t, app, "bob")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	claims = tokenClaims(t, login(t, app, "bob"))
	assert.Contains(t, claims["roles"], "User")
	assert.NotContains(t, claims["roles"], "Admin")

	// A repeated username is rejected with no row created.
	resp = signUp(t, app, "alice")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body = decodeJSON(t, resp)
	assert.Equal(t, "Error Message", body["Status"])
	assert.Equal(t, "Username already exists", body["Message"])
}

func TestTokenExpiryIsOneHour(t *testing.T) {
	app, _ := setupApp(t)
	require.Equal(t, http.StatusOK, signUp(t, app, "alice").StatusCode)

	claims := tokenClaims(t, login(t, app, "alice"))
	iat := int64(claims["iat"].(float64))
	exp := int64(claims["exp"].(float64))
	assert.Equal(t, int64(3600), exp-iat)
	assert.NotEmpty(t, claims["jti"])
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	app, _ := setupApp(t)
	require.Equal(t, http.StatusOK, signUp(t, app, "alice").StatusCode)

	wrongPass := jsonRequest(t, app, http.MethodPost, "/api/Authentication/login", map[string]string{
		"UserName": "alice", "Password": "wrong",
	}, "")
	unknownUser := jsonRequest(t, app, http.MethodPost, "/api/Authentication/login", map[string]string{
		"UserName": "nobody", "Password": "whatever",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.StatusCode)

	wrongBody, _ := io.ReadAll(wrongPass.Body)
	unknownBody, _ := io.ReadAll(unknownUser.Body)
	assert.Equal(t, wrongBody, unknownBody)
}

func TestResourceRoutesRequireToken(t *testing.T) {
	app, _ := setupApp(t)

	for _, url := range []string{
		"/api/Categories/", "/api/Products/", "/api/Customer/",
		"/api/Orders/", "/api/OrderItems/", "/api/Employees/",
	} {
		resp := jsonRequest(t, app, http.MethodGet, url, nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "url %s", url)
	}

	resp := jsonRequest(t, app, http.MethodGet, "/api/Categories/", nil, "not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCategoryLifecycle(t *testing.T) {
	app, _ := setupApp(t)
	token := authToken(t, app)

	// Create.
	resp := jsonRequest(t, app, http.MethodPost, "/api/Categories/", map[string]string{"name": "Dairy"}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/api/Categories/1", resp.Header.Get("Location"))
	created := decodeJSON(t, resp)
	assert.Equal(t, float64(1), created["categoryId"])
	assert.Equal(t, "Dairy", created["name"])

	// Get-by-id round-trip.
	resp = jsonRequest(t, app, http.MethodGet, "/api/Categories/1", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeJSON(t, resp)
	assert.Equal(t, created, got)

	// List envelope.
	resp = jsonRequest(t, app, http.MethodGet, "/api/Categories/?pageNumber=1&pageSize=5", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decodeJSON(t, resp)
	assert.Equal(t, float64(1), page["totalRecords"])
	assert.Equal(t, float64(1), page["pageNumber"])
	assert.Equal(t, float64(5), page["pageSize"])
	assert.Equal(t, float64(1), page["totalPages"])
	data := page["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "Dairy", data[0].(map[string]interface{})["name"])

	// Update is a full replace and answers 204.
	resp = jsonRequest(t, app, http.MethodPut, "/api/Categories/1", map[string]string{"name": "Frozen"}, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = jsonRequest(t, app, http.MethodGet, "/api/Categories/1", nil, token)
	assert.Equal(t, "Frozen", decodeJSON(t, resp)["name"])

	// Update of an unknown id answers 404.
	resp = jsonRequest(t, app, http.MethodPut, "/api/Categories/99", map[string]string{"name": "Ghost"}, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Delete answers 204; repeating it answers 404, not a no-op success.
	resp = jsonRequest(t, app, http.MethodDelete, "/api/Categories/1", nil, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = jsonRequest(t, app, http.MethodDelete, "/api/Categories/1", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = jsonRequest(t, app, http.MethodGet, "/api/Categories/1", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPaginationValidation(t *testing.T) {
	app, _ := setupApp(t)
	token := authToken(t, app)

	for _, query := range []string{
		"pageNumber=0", "pageSize=0", "pageNumber=-1", "pageSize=-3", "pageNumber=0&pageSize=0",
		"pageNumber=abc", "pageSize=abc", "pageNumber=1.5",
	} {
		resp := jsonRequest(t, app, http.MethodGet, "/api/Categories/?"+query, nil, token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "query %s", query)
		body := decodeJSON(t, resp)
		assert.Equal(t, "Page number and page size must be greater than 0.", body["message"])
	}
}

func TestPaginationEnvelopeArithmetic(t *testing.T) {
	app, _ := setupApp(t)
	token := authToken(t, app)

	for i := 1; i <= 7; i++ {
		resp := jsonRequest(t, app, http.MethodPost, "/api/Customer/", map[string]string{
			"firstName": fmt.Sprintf("First%d", i),
			"lastName":  "Last",
			"phone":     "555-0100",
		}, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	// Full page, ordered by primary key ascending.
	resp := jsonRequest(t, app, http.MethodGet, "/api/Customer/?pageNumber=1&pageSize=3", nil, token)
	page := decodeJSON(t, resp)
	assert.Equal(t, float64(7), page["totalRecords"])
	assert.Equal(t, float64(3), page["totalPages"]) // ceil(7/3)
	data := page["data"].([]interface{})
	require.Len(t, data, 3)
	for i, row := range data {
		assert.Equal(t, float64(i+1), row.(map[string]interface{})["customerId"])
	}

	// Last partial page.
	resp = jsonRequest(t, app, http.MethodGet, "/api/Customer/?pageNumber=3&pageSize=3", nil, token)
	page = decodeJSON(t, resp)
	assert.Len(t, page["data"].([]interface{}), 1)

	// Out-of-range page: empty data, metadata still populated.
	resp = jsonRequest(t, app, http.MethodGet, "/api/Customer/?pageNumber=4&pageSize=3", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page = decodeJSON(t, resp)
	assert.Equal(t, float64(7), page["totalRecords"])
	assert.Equal(t, float64(3), page["totalPages"])
	assert.Empty(t, page["data"].([]interface{}))
}

func TestProductUploadLifecycle(t *testing.T) {
	app, uploadDir := setupApp(t)
	token := authToken(t, app)

	// Create with an image.
	resp := formRequest(t, app, http.MethodPost, "/api/Products/", map[string]string{
		"name":          "Milk",
		"description":   "Whole milk 1L",
		"price":         "2.49",
		"stockQuantity": "100",
	}, "milk.png", []byte("png-bytes"), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeJSON(t, resp)
	imageURL, _ := created["imageUrl"].(string)
	require.True(t, strings.HasPrefix(imageURL, "/products/"), "imageUrl %q", imageURL)
	require.True(t, strings.HasSuffix(imageURL, "_milk.png"))

	// The relative URL resolves to a real file under the upload root.
	_, err := os.Stat(filepath.Join(uploadDir, filepath.FromSlash(strings.TrimPrefix(imageURL, "/"))))
	require.NoError(t, err)

	// Update without a file keeps the previous imageUrl.
	resp = formRequest(t, app, http.MethodPut, "/api/Products/1", map[string]string{
		"name":          "Whole Milk",
		"description":   "Whole milk 1L",
		"price":         "2.99",
		"stockQuantity": "90",
	}, "", nil, token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodGet, "/api/Products/1", nil, token)
	got := decodeJSON(t, resp)
	assert.Equal(t, "Whole Milk", got["name"])
	assert.Equal(t, float64(2.99), got["price"])
	assert.Equal(t, float64(90), got["stockQuantity"])
	assert.Equal(t, imageURL, got["imageUrl"])

	// Update with a new file replaces the imageUrl.
	resp = formRequest(t, app, http.MethodPut, "/api/Products/1", map[string]string{
		"name":          "Whole Milk",
		"price":         "2.99",
		"stockQuantity": "90",
	}, "new.png", []byte("new-bytes"), token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodGet, "/api/Products/1", nil, token)
	updated := decodeJSON(t, resp)
	assert.NotEqual(t, imageURL, updated["imageUrl"])
	assert.True(t, strings.HasSuffix(updated["imageUrl"].(string), "_new.png"))
}

func TestProductRejectsNegativePrice(t *testing.T) {
	app, _ := setupApp(t)
	token := authToken(t, app)

	resp := formRequest(t, app, http.MethodPost, "/api/Products/", map[string]string{
		"name":          "Milk",
		"price":         "-1.00",
		"stockQuantity": "10",
	}, "", nil, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProductEagerLoadsCategory(t *testing.T) {
	app, _ := setupApp(t)
	token := authToken(t, app)

	resp := jsonRequest(t, app, http.MethodPost, "/api/Categories/", map[string]string{"name": "Dairy"}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = formRequest(t, app, http.MethodPost, "/api/Products/", map[string]string{
		"name":          "Milk",
		"price":         "2.49",
		"stockQuantity": "100",
		"categoryId":    "1",
	}, "", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodGet, "/api/Products/1", nil, token)
	got := decodeJSON(t, resp)
	category, ok := got["category"].(map[string]interface{})
	require.True(t, ok, "product must carry its category")
	assert.Equal(t, "Dairy", category["name"])
}

func TestEmployeeRequiresNames(t *testing.T) {
	app, _ := setupApp(t)
	token := authToken(t, app)

	resp := formRequest(t, app, http.MethodPost, "/api/Employees/", map[string]string{
		"lastName": "Smith",
		"role":     "Cashier",
		"salary":   "30000",
	}, "", nil, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = formRequest(t, app, http.MethodPost, "/api/Employees/", map[string]string{
		"firstName": "Jane",
		"role":      "Cashier",
	}, "", nil, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = formRequest(t, app, http.MethodPost, "/api/Employees/", map[string]string{
		"firstName": "Jane",
		"lastName":  "Smith",
		"role":      "Cashier",
		"salary":    "30000",
	}, "", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeJSON(t, resp)
	assert.Equal(t, "Jane", created["firstName"])
	assert.Equal(t, float64(30000), created["salary"])
}

func TestOrderEagerLoadsRelations(t *testing.T) {
	app, _ := setupApp(t)
	token := authToken(t, app)

	resp := jsonRequest(t, app, http.MethodPost, "/api/Customer/", map[string]string{
		"firstName": "Ann", "lastName": "Lee", "phone": "555-0101",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = formRequest(t, app, http.MethodPost, "/api/Products/", map[string]string{
		"name": "Milk", "price": "2.49", "stockQuantity": "100",
	}, "", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = formRequest(t, app, http.MethodPost, "/api/Orders/", map[string]string{
		"orderDate":   "2024-06-01",
		"customerId":  "1",
		"totalAmount": "4.98",
	}, "", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = formRequest(t, app, http.MethodPost, "/api/OrderItems/", map[string]string{
		"orderId":   "1",
		"productId": "1",
		"quantity":  "2",
		"subtotal":  "4.98",
	}, "", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Orders attach Customer and OrderItems.
	resp = jsonRequest(t, app, http.MethodGet, "/api/Orders/1", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	order := decodeJSON(t, resp)
	customer, ok := order["customer"].(map[string]interface{})
	require.True(t, ok, "order must carry its customer")
	assert.Equal(t, "Ann", customer["firstName"])
	items, ok := order["orderItems"].([]interface{})
	require.True(t, ok, "order must carry its items")
	require.Len(t, items, 1)
	assert.Equal(t, float64(2), items[0].(map[string]interface{})["quantity"])
	assert.Equal(t, float64(4.98), order["totalAmount"])

	// OrderItems attach Order and Product.
	resp = jsonRequest(t, app, http.MethodGet, "/api/OrderItems/1", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	item := decodeJSON(t, resp)
	_, ok = item["order"].(map[string]interface{})
	assert.True(t, ok, "order item must carry its order")
	product, ok := item["product"].(map[string]interface{})
	require.True(t, ok, "order item must carry its product")
	assert.Equal(t, "Milk", product["name"])
}

func TestDeleteNullsReferences(t *testing.T) {
	app, _ := setupApp(t)
	token := authToken(t, app)

	resp := jsonRequest(t, app, http.MethodPost, "/api/Customer/", map[string]string{
		"firstName": "Ann", "lastName": "Lee", "phone": "555-0101",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = formRequest(t, app, http.MethodPost, "/api/Products/", map[string]string{
		"name": "Milk", "price": "2.49", "stockQuantity": "100",
	}, "", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = formRequest(t, app, http.MethodPost, "/api/Orders/", map[string]string{
		"orderDate": "2024-06-01", "customerId": "1", "totalAmount": "4.98",
	}, "", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = formRequest(t, app, http.MethodPost, "/api/OrderItems/", map[string]string{
		"orderId": "1", "productId": "1", "quantity": "2", "subtotal": "4.98",
	}, "", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Deleting the customer keeps the order but nulls its reference.
	resp = jsonRequest(t, app, http.MethodDelete, "/api/Customer/1", nil, token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodGet, "/api/Orders/1", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	order := decodeJSON(t, resp)
	assert.Nil(t, order["customerId"])
	assert.Nil(t, order["customer"])

	// Deleting the product keeps the order item but nulls its reference.
	resp = jsonRequest(t, app, http.MethodDelete, "/api/Products/1", nil, token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodGet, "/api/OrderItems/1", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	item := decodeJSON(t, resp)
	assert.Nil(t, item["productId"])
	assert.Nil(t, item["product"])
	assert.Equal(t, float64(2), item["quantity"])
}

func TestGetUnknownIDReturns404(t *testing.T) {
	app, _ := setupApp(t)
	token := authToken(t, app)

	for _, url := range []string{
		"/api/Categories/99", "/api/Products/99", "/api/Customer/99",
		"/api/Orders/99", "/api/OrderItems/99", "/api/Employees/99",
	} {
		resp := jsonRequest(t, app, http.MethodGet, url, nil, token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "url %s", url)
	}
}
