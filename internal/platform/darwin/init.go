//go:build darwin && cgo

package darwin

import "github.com/guipilot/guipilot/internal/platform"

func init() {
	platform.NewProviderFunc = func(input platform.InputConfig) (*platform.Provider, error) {
		return &platform.Provider{
			Trees:         NewTrees(),
			Inputter:      NewInputter(input),
			Apps:          NewApps(),
			Permissions:   NewPermissions(),
			Screenshotter: NewScreenshotter(),
		}, nil
	}
}
