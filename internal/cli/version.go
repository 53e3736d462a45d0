package cli

import (
	"fmt"
	"runtime/debug"
	"strings"
)

const (
	appURL = "https://github.com/babarot/xcom"
)

type Version struct {
	AppName   string
	Version   string
	Revision  string
	BuildDate string
}

// description returns the one-line summary printed under the name
func (v Version) description() string {
	switch v.AppName {
	case "recyclebin":
		return "browse, restore and purge the Windows Recycle Bin"
	case "xcopy":
		return "copy files in one batch"
	case "xmove":
		return "move files in one batch"
	}
	return "recycle bin and batch transfer tools"
}

func (v Version) Print() string {
	var s strings.Builder
	switch v.Version {
	case "unset", "unknown", "develop", "":
		if info, ok := debug.ReadBuildInfo(); ok {
			v.Version = info.Main.Version
		}
	}
	fmt.Fprintln(&s, v.AppName+" - "+v.description())
	fmt.Fprintln(&s, appURL)
	fmt.Fprintln(&s, "")
	fmt.Fprintln(&s, "version: "+v.Version)
	fmt.Fprintln(&s, "revision: "+v.Revision)
	fmt.Fprintln(&s, "buildDate: "+v.BuildDate)
	return s.String()
}
