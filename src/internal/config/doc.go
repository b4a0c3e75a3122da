// Package config handles configuration for ifselect.
//
// Configuration comes from three places: environment variables carrying a
// prefix (UCCL_ and NCCL_ by default), KEY=VALUE env files, and an optional
// TOML file whose [params] table supplies fallbacks.
//
// # Configuration File
//
//	[general]
//	env_prefixes = ["UCCL_", "NCCL_"]
//	max_interfaces = 16
//	strict_filters = false
//
//	[api]
//	listen_addr = "127.0.0.1:8179"
//
//	[params]
//	SOCKET_IFNAME = "^docker,lo"
//	COMM_ID = "10.0.0.1:9000"
//
// # Example Usage
//
//	cfg, err := config.LoadConfig("/etc/ifselect.toml")
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cfg.ValidateConfig(); err != nil {
//	    log.Fatalf("%v", err)
//	}
//
//	params := config.NewParamsFromConfig(cfg)
//	ifname, ok := params.Get("SOCKET_IFNAME")
//	maxIfs := params.MaxInterfaces(cfg.General.MaxInterfaces)
package config
