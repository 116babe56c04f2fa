package model

// Version is the module version reported by the health endpoint and the CLI.
const Version = "0.3.1"
