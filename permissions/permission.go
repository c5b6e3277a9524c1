package permissions

import (
	_ "embed"
	"encoding/json"
	"fixmycondo/shared/constant"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission guards one route pattern. An empty role list admits any authenticated user.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

func (p Permission) Allows(role string) bool {
	return len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

var methods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

func (r *PermissionData) FindPermissions(path, method string) Permission {
	return r.index[routeKey(method, path)]
}

// Load decodes a permission table. Duplicate routes, unknown methods and unknown roles are rejected.
func Load(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}

	permissions.index = make(map[string]Permission, len(permissions.Endpoints))

	for _, endpoint := range permissions.Endpoints {
		if !slices.Contains(methods, endpoint.Method) {
			return nil, fmt.Errorf("%s: unknown method %q", endpoint.Path, endpoint.Method)
		}

		for _, role := range endpoint.Permissions {
			if !slices.Contains(constant.UserRoles, role) {
				return nil, fmt.Errorf("%s %s: unknown role %q", endpoint.Method, endpoint.Path, role)
			}
		}

		key := routeKey(endpoint.Method, endpoint.Path)
		if _, ok := permissions.index[key]; ok {
			return nil, fmt.Errorf("%s: duplicate route", key)
		}

		permissions.index[key] = endpoint
	}

	return &permissions, nil
}

// Get returns the embedded permission table.
func Get() *PermissionData {
	permissions, err := Load(permissionsData)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load embedded permissions")
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Loaded embedded permissions")

	return permissions
}
