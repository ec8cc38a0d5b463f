package acl

const unknownLabel = "Unknown"

// App is an installed application instance, unique by ProxyAddress. AppID
// is shared by every instance of the same application type.
type App struct {
	ProxyAddress          string `json:"proxyAddress" yaml:"proxyAddress"`
	AppID                 string `json:"appId" yaml:"appId"`
	Name                  string `json:"name,omitempty" yaml:"name,omitempty"`
	Identifier            string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Roles                 []Role `json:"roles,omitempty" yaml:"roles,omitempty"`
	IsAragonOsInternalApp bool   `json:"isAragonOsInternalApp,omitempty" yaml:"isAragonOsInternalApp,omitempty"`
	HasWebApp             bool   `json:"hasWebApp,omitempty" yaml:"hasWebApp,omitempty"`
}

func (a App) DisplayName() string {
	if a.Name == "" {
		return unknownLabel
	}

	return a.Name
}

// InstanceLabel tells apart several instances of the same app type.
func (a App) InstanceLabel() string {
	switch {
	case a.IsAragonOsInternalApp:
		return "System App"
	case !a.HasWebApp:
		return "Background App"
	case a.Identifier != "":
		return a.Identifier
	default:
		return ShortenAddress(a.ProxyAddress)
	}
}

// FindRole looks up one of the roles declared by the app type.
func (a App) FindRole(roleBytes string) (Role, bool) {
	for _, role := range a.Roles {
		if RoleBytesEqual(role.Bytes, roleBytes) {
			return role, true
		}
	}

	return Role{}, false
}

// FindApp returns the app whose proxy address matches, ignoring case.
func FindApp(apps []App, proxyAddress string) (App, bool) {
	for _, app := range apps {
		if AddressesEqual(app.ProxyAddress, proxyAddress) {
			return app, true
		}
	}

	return App{}, false
}

// NamedApps keeps the apps that can be offered as entities in a selector.
func NamedApps(apps []App) []App {
	named := []App{}
	for _, app := range apps {
		if app.Name != "" {
			named = append(named, app)
		}
	}

	return named
}
