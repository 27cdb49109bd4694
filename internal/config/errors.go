package config

import "errors"

var ErrInvalidPort = errors.New("port must be between 1 and 65535")
var ErrInvalidBindAddress = errors.New("bind address must be an IP address")
var ErrRootNotDir = errors.New("root is not a directory")
