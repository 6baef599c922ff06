package catalog

// App is one catalog entry as served by the store endpoint. Values are
// treated as immutable once decoded.
type App struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Subtitle    string   `json:"subtitle"`
	IconURL     string   `json:"icon"`
	Screenshots []string `json:"screenshots"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Size        string   `json:"size"`
	Version     string   `json:"version"`
	APKURL      string   `json:"apk_url"`
	Featured    bool     `json:"featured"`
	Category    string   `json:"category"`
}

// Snapshot is the response body of the catalog endpoint.
type Snapshot struct {
	Success bool  `json:"success"`
	Apps    []App `json:"apps"`
}

// Clone returns a copy of a that shares no slices with it.
func (a App) Clone() App {
	if a.Screenshots != nil {
		a.Screenshots = append(make([]string, 0, len(a.Screenshots)), a.Screenshots...)
	}
	return a
}

func cloneApps(apps []App) []App {
	out := make([]App, len(apps))
	for i, a := range apps {
		out[i] = a.Clone()
	}
	return out
}

// FindByID returns the app with the given id.
func FindByID(apps []App, id int) (App, bool) {
	for _, a := range apps {
		if a.ID == id {
			return a, true
		}
	}
	return App{}, false
}
