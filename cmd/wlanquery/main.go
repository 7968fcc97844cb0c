package main

import "github.com/strct-org/strct-wlan/cmd/wlanquery/cmd"

func main() {
	cmd.Execute()
}
