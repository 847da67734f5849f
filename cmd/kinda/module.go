package main

import (
	"github.com/Kinda-lang-dev/kinda-lang/chaos"
	"github.com/Kinda-lang-dev/kinda-lang/kindaconfigs"
	"github.com/Kinda-lang-dev/kinda-lang/kindastar"
	"github.com/Kinda-lang-dev/kinda-lang/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs kindaconfigs.Module
	Chaos   chaos.Module
	Star    kindastar.Module
}
