package main

import (
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mjczone/dappermatic-sub001/internal/audit"
	"github.com/mjczone/dappermatic-sub001/internal/datasource"
	"github.com/mjczone/dappermatic-sub001/internal/handler"
	"github.com/mjczone/dappermatic-sub001/internal/permission"
	"github.com/mjczone/dappermatic-sub001/internal/schemaops"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, using process environment")
	}

	registry := datasource.NewRegistry()
	cfgPath := envOr("DATASOURCES_FILE", "datasources.yaml")
	sources, err := datasource.LoadFile(cfgPath)
	if err != nil {
		log.Fatalf("loading datasources from %s: %v", cfgPath, err)
	}
	for _, src := range sources {
		if err := registry.Add(src); err != nil {
			log.Fatalf("registering datasource: %v", err)
		}
	}
	log.Printf("registered datasources: %s", strings.Join(registry.Names(), ", "))

	var recorder schemaops.AuditRecorder
	if path := os.Getenv("AUDIT_DB"); path != "" {
		sqliteRecorder, err := audit.NewSQLiteRecorder(path)
		if err != nil {
			log.Fatalf("opening audit database %s: %v", path, err)
		}
		defer sqliteRecorder.Close()
		recorder = sqliteRecorder
	} else {
		log.Println("AUDIT_DB not set, audit events stay in memory")
		recorder = audit.NewMemoryRecorder()
	}

	var checker schemaops.PermissionChecker
	if tokens := os.Getenv("API_TOKENS"); tokens != "" {
		checker = permission.NewTokenChecker(strings.Split(tokens, ","))
	} else {
		log.Println("API_TOKENS not set, allowing all callers")
		checker = permission.AllowAll{}
	}

	primaryKeys := schemaops.NewPrimaryKeys(registry, checker, recorder)

	r := gin.Default()
	handler.New(primaryKeys, registry).Register(r)

	r.Run(":" + envOr("PORT", "8080"))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
