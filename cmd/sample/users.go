package main

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bjaus/apiroute"
	"github.com/bjaus/apiroute/schema"
)

// User is the core domain entity.
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserDto is the body of POST /users.
type CreateUserDto struct {
	Name  string `json:"name" jsonschema:"required,minLength=3,description=Display name"`
	Email string `json:"email" jsonschema:"required,format=email"`
	Role  string `json:"role,omitempty" jsonschema:"enum=admin,enum=member,default=member"`
}

// ListUsersQuery filters GET /users.
type ListUsersQuery struct {
	Role   string `json:"role"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// UserParams identifies a user in the path.
type UserParams struct {
	ID int `json:"id"`
}

//go:embed schemas.yaml
var schemasYAML []byte

var (
	listUsersQuery = schema.Of[ListUsersQuery]("ListUsersQuery",
		schema.String("role").OneOf("admin", "member").Describe("Filter by role"),
		schema.Integer("limit").WithDefault(50).Min(1).Max(100),
		schema.Integer("offset").WithDefault(0).Min(0),
	)

	userParams = schema.Of[UserParams]("UserParams",
		schema.Integer("id").Require().Min(1).Describe("User ID"),
	)
)

// userSchemas holds the catalogue and the schemas routes validate against.
type userSchemas struct {
	catalogue *schema.Catalogue
	create    *schema.Schema
	update    *schema.Schema
}

func loadUserSchemas() (*userSchemas, error) {
	create, err := schema.Reflect[CreateUserDto]("CreateUserDto")
	if err != nil {
		return nil, err
	}

	cat, err := schema.LoadCatalogue(bytes.NewReader(schemasYAML))
	if err != nil {
		return nil, err
	}
	for _, s := range []*schema.Schema{create, listUsersQuery, userParams} {
		if err := cat.Register(s); err != nil {
			return nil, err
		}
	}

	update, ok := cat.Lookup("UpdateUserDto")
	if !ok {
		return nil, fmt.Errorf("%w: UpdateUserDto missing from schemas.yaml", schema.ErrInvalidSchema)
	}

	return &userSchemas{catalogue: cat, create: create, update: update}, nil
}

func declareUsers(reg *apiroute.Registry, s *userSchemas, audit apiroute.Middleware) {
	reg.Declare("listUsers",
		apiroute.Get("/users", "List users"),
		apiroute.ValidateQuery(listUsersQuery),
	)
	reg.Declare("createUser",
		apiroute.Post("/users", "Create a user"),
		apiroute.Use(audit),
		apiroute.ValidateBody(s.create),
	)
	reg.Declare("getUser",
		apiroute.Get("/users/:id", "Get a user by ID"),
		apiroute.ValidateParams(userParams),
	)
	reg.Declare("updateUser",
		apiroute.Patch("/users/:id", "Update a user"),
		apiroute.Use(audit),
		apiroute.ValidateParams(userParams),
		apiroute.ValidateBody(s.update),
	)
	reg.Declare("deleteUser",
		apiroute.Delete("/users/:id", "Delete a user"),
		apiroute.Use(audit),
		apiroute.ValidateParams(userParams),
	)
}

type userController struct {
	mu     sync.RWMutex
	users  map[int]*User
	nextID int
	now    func() time.Time
}

func newUserController() *userController {
	return &userController{
		users:  make(map[int]*User),
		nextID: 1,
		now:    time.Now,
	}
}

func (c *userController) Handlers() apiroute.Handlers {
	return apiroute.Handlers{
		"listUsers":  c.list,
		"createUser": c.create,
		"getUser":    c.get,
		"updateUser": c.update,
		"deleteUser": c.remove,
	}
}

type listUsersResp struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

func (c *userController) list(w http.ResponseWriter, r *http.Request) error {
	q, _ := apiroute.QueryOf[ListUsersQuery](r)

	c.mu.RLock()
	users := make([]User, 0, len(c.users))
	for _, u := range c.users {
		if q.Role != "" && u.Role != q.Role {
			continue
		}
		users = append(users, *u)
	}
	c.mu.RUnlock()

	slices.SortFunc(users, func(a, b User) int { return a.ID - b.ID })
	total := len(users)

	if q.Offset >= len(users) {
		users = []User{}
	} else {
		users = users[q.Offset:]
	}
	if q.Limit < len(users) {
		users = users[:q.Limit]
	}
	return respond(w, http.StatusOK, listUsersResp{Users: users, Total: total})
}

func (c *userController) create(w http.ResponseWriter, r *http.Request) error {
	dto, _ := apiroute.BodyOf[CreateUserDto](r)

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, u := range c.users {
		if strings.EqualFold(u.Email, dto.Email) {
			return apiroute.Errorf(http.StatusConflict, "email %s is already registered", dto.Email)
		}
	}

	u := &User{
		ID:        c.nextID,
		Name:      dto.Name,
		Email:     dto.Email,
		Role:      dto.Role,
		CreatedAt: c.now().UTC(),
	}
	c.nextID++
	c.users[u.ID] = u
	return respond(w, http.StatusCreated, u)
}

func (c *userController) get(w http.ResponseWriter, r *http.Request) error {
	p, _ := apiroute.ParamsOf[UserParams](r)

	c.mu.RLock()
	defer c.mu.RUnlock()

	u, ok := c.users[p.ID]
	if !ok {
		return apiroute.Errorf(http.StatusNotFound, "user %d not found", p.ID)
	}
	return respond(w, http.StatusOK, u)
}

// update applies a partial update. UpdateUserDto comes from the YAML
// catalogue and has no Go type, so the validated body is a map.
func (c *userController) update(w http.ResponseWriter, r *http.Request) error {
	p, _ := apiroute.ParamsOf[UserParams](r)
	patch, _ := apiroute.ValueOf[map[string]any](r, apiroute.InBody)

	c.mu.Lock()
	defer c.mu.Unlock()

	u, ok := c.users[p.ID]
	if !ok {
		return apiroute.Errorf(http.StatusNotFound, "user %d not found", p.ID)
	}
	if v, ok := patch["name"].(string); ok {
		u.Name = v
	}
	if v, ok := patch["email"].(string); ok {
		u.Email = v
	}
	if v, ok := patch["role"].(string); ok {
		u.Role = v
	}
	return respond(w, http.StatusOK, u)
}

func (c *userController) remove(w http.ResponseWriter, r *http.Request) error {
	p, _ := apiroute.ParamsOf[UserParams](r)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.users[p.ID]; !ok {
		return apiroute.Errorf(http.StatusNotFound, "user %d not found", p.ID)
	}
	delete(c.users, p.ID)
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func respond(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
