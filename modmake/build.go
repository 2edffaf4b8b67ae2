package main

import (
	. "github.com/saylorsolutions/modmake"
)

const (
	boxbenchVersion = "0.1.0"
)

func main() {
	b := NewBuild()
	b.Generate().DependsOnRunner("tidy", "", Go().ModTidy())

	boxbench := NewAppBuild("boxbench", "cmd/boxbench", boxbenchVersion)
	boxbench.Build(func(gb *GoBuild) {
		gb.
			StripDebugSymbols().
			SetVariable("main", "version", boxbenchVersion).
			CgoEnabled(false)
	})
	boxbench.Variant("windows", "amd64")
	boxbench.Variant("linux", "amd64")
	boxbench.Variant("linux", "arm64")
	boxbench.Variant("darwin", "amd64")
	boxbench.Variant("darwin", "arm64")
	b.ImportApp(boxbench)

	b.Execute()
}
