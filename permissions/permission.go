package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/ymjo140/rendezvous-merchant-sub000/shared/constant"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var (
	knownRoles     = []string{constant.RoleOwner, constant.RoleStaff}
	allowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
)

// Permission is one route pattern as chi reports it, e.g. /v1/reservations/{id}.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether role may call the endpoint. An endpoint without a
// role list is open to every authenticated role.
func (p Permission) Allows(role string) bool {
	return p.Skip || len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// Load parses and indexes a permissions document, rejecting unknown methods,
// unknown roles and duplicate routes.
func Load(raw []byte) (*PermissionData, error) {
	var data PermissionData

	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	data.index = make(map[string]Permission, len(data.Endpoints))

	for _, endpoint := range data.Endpoints {
		if !slices.Contains(allowedMethods, strings.ToUpper(endpoint.Method)) {
			return nil, fmt.Errorf("endpoint %s has unknown method %q", endpoint.Path, endpoint.Method)
		}

		for _, role := range endpoint.Permissions {
			if !slices.Contains(knownRoles, role) {
				return nil, fmt.Errorf("endpoint %s %s grants unknown role %q", endpoint.Method, endpoint.Path, role)
			}
		}

		key := routeKey(endpoint.Method, endpoint.Path)
		if _, dup := data.index[key]; dup {
			return nil, fmt.Errorf("endpoint %s is listed twice", key)
		}

		data.index[key] = endpoint
	}

	return &data, nil
}

// FindPermissions returns the zero Permission for routes that are not listed.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	return r.index[routeKey(method, path)]
}

// Get loads the embedded permissions.json. A broken document disables every
// guarded route rather than opening them.
func Get() *PermissionData {
	data, err := Load(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("Successfully loaded embedded permissions")

	return data
}
