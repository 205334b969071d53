/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// SetValue sets a configuration value for the specified key.
func SetValue(key, value string) {
	viper.Set(key, value)
}

// LoadConfig loads configuration from the specified file path.
func LoadConfig(path string) error {
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	return viper.ReadInConfig()
}

func getString(key, defaultValue string) string {
	if !viper.IsSet(key) {
		return defaultValue
	}
	return viper.GetString(key)
}

func getBool(key string, defaultValue bool) bool {
	if !viper.IsSet(key) {
		return defaultValue
	}
	return viper.GetBool(key)
}

func getInt(key string, defaultValue int) int {
	if !viper.IsSet(key) {
		return defaultValue
	}
	return viper.GetInt(key)
}

func getFloat(key string, defaultValue float64) float64 {
	if !viper.IsSet(key) {
		return defaultValue
	}
	return viper.GetFloat64(key)
}

func getStrings(key string) []string {
	val := viper.GetString(key)
	return removeBlank(strings.Split(val, ","))
}

func removeBlank(slice []string) []string {
	var result []string
	for _, val := range slice {
		if trim := strings.TrimSpace(val); trim != "" {
			result = append(result, trim)
		}
	}
	return result
}

func getFromFile(configPath, item string) string {
	path := getString(configPath, "")
	data, err := os.ReadFile(filepath.Join(path, item))
	if err != nil {
		return ""
	}
	key := string(data)
	return strings.TrimRight(key, "\r\n")
}

// IsCryptoEnable returns whether encryption is enabled.
func IsCryptoEnable() bool {
	return getBool(cryptoEnable, true)
}

// GetCryptoKey returns the encryption key.
func GetCryptoKey() string {
	return getFromFile(cryptoSecretPath, "key")
}

// IsHealthCheckEnabled returns whether health checks are enabled.
func IsHealthCheckEnabled() bool {
	return getBool(healthCheckEnable, true)
}

// GetHealthCheckPort returns the port for health check endpoint.
func GetHealthCheckPort() int {
	return getInt(healthCheckPort, 0)
}

// GetServerPort returns the API server port.
func GetServerPort() int {
	return getInt(serverPort, 0)
}

// GetServerBaseURL returns the externally reachable base URL of this server,
// used when building URLs for objects held by the built-in local endpoint.
func GetServerBaseURL() string {
	return strings.TrimRight(getString(serverBaseURL, ""), "/")
}

// GetUploadMaxMB returns the maximum accepted upload size in megabytes.
func GetUploadMaxMB() int {
	return getInt(uploadMaxMB, 30)
}

// GetArchiveMaxEntries returns the maximum number of entries ingested from one archive.
func GetArchiveMaxEntries() int {
	return getInt(archiveMaxFile, 1000)
}

// GetDBHost returns the database host address.
func GetDBHost() string {
	return getFromFile(dbSecretPath, "host")
}

// GetDBPort returns the database port number.
func GetDBPort() int {
	data := getFromFile(dbSecretPath, "port")
	n, err := strconv.Atoi(data)
	if err != nil {
		return 0
	}
	return n
}

// GetDBName returns the database name.
func GetDBName() string {
	return getFromFile(dbSecretPath, "dbname")
}

// GetDBUser returns the database username.
func GetDBUser() string {
	return getFromFile(dbSecretPath, "user")
}

// GetDBPassword returns the database password.
func GetDBPassword() string {
	return getFromFile(dbSecretPath, "password")
}

// GetDBSslMode returns the database SSL mode.
func GetDBSslMode() string {
	return getString(dbSslMode, "require")
}

// GetDBMaxOpenConns returns the maximum number of open database connections.
func GetDBMaxOpenConns() int {
	return getInt(dbMaxOpenConns, 100)
}

// GetDBMaxIdleConns returns the maximum number of idle database connections.
func GetDBMaxIdleConns() int {
	return getInt(dbMaxIdleConns, 10)
}

// GetDBMaxLifetimeSecond returns the maximum lifetime of database connections in seconds.
func GetDBMaxLifetimeSecond() int {
	return getInt(dbMaxLifetime, 600)
}

// GetDBMaxIdleTimeSecond returns the maximum idle time of database connections in seconds.
func GetDBMaxIdleTimeSecond() int {
	return getInt(dbMaxIdleTimeSecond, 60)
}

// GetDBConnectTimeoutSecond returns the database connection timeout in seconds.
func GetDBConnectTimeoutSecond() int {
	return getInt(dbConnectTimeoutSecond, 10)
}

// GetDBRequestTimeoutSecond returns the database request timeout in seconds.
func GetDBRequestTimeoutSecond() int {
	return getInt(dbRequestTimeoutSecond, 20)
}

// GetStorageLocalRoot returns the root directory of the built-in local endpoint.
func GetStorageLocalRoot() string {
	return getString(storageLocalRoot, "./data")
}

// GetStoragePathPrefix returns the global object-key prefix, may be empty.
func GetStoragePathPrefix() string {
	return strings.Trim(getString(storagePathPrefix, ""), "/")
}

// GetSyncBatchSize returns the number of images per sync sub-task.
func GetSyncBatchSize() int {
	return getInt(storageSyncBatchSize, 500)
}

// GetBackupSchedule returns the cron spec of the scheduled full-backup sweep, may be empty.
func GetBackupSchedule() string {
	return getString(storageBackupSchedule, "")
}

// GetHealthCheckCron returns the cron spec of the endpoint health check pass.
func GetHealthCheckCron() string {
	return getString(storageHealthCheckCron, "@every 5m")
}

// GetAutoMirrorCron returns the cron spec of the auto-mirror pending-location pass.
func GetAutoMirrorCron() string {
	return getString(storageAutoMirrorCron, "@every 10m")
}

// GetTaskBatchConcurrency returns how many items a long task processes concurrently.
func GetTaskBatchConcurrency() int {
	n := getInt(storageTaskBatchConcurrency, 4)
	if n < 1 {
		n = 1
	}
	return n
}

// GetTaskItemDelayMillis returns the delay between long-task items in milliseconds.
func GetTaskItemDelayMillis() int {
	return getInt(storageTaskItemDelayMillis, 0)
}

// GetTaskFailedItemsCap returns how many failed items a task keeps in its progress record.
func GetTaskFailedItemsCap() int {
	return getInt(storageTaskFailedItemsCapacity, 50)
}

// IsAutoAnalyzeEnable returns whether newly ingested images are queued for analysis.
func IsAutoAnalyzeEnable() bool {
	return getBool(imageAutoAnalyze, true)
}

// GetImageURLPriority returns the URL resolution preference: auto, local or cdn.
func GetImageURLPriority() string {
	return getString(imageURLPriority, "auto")
}

// IsQueueEnable returns whether the analysis queue workers run in this process.
func IsQueueEnable() bool {
	return getBool(queueEnable, true)
}

// GetQueueMaxWorkers returns the analysis worker count, clamped to [1, 10].
func GetQueueMaxWorkers() int {
	n := getInt(queueMaxWorkers, 2)
	if n < 1 {
		n = 1
	}
	if n > 10 {
		n = 10
	}
	return n
}

// GetQueueBatchIntervalSecond returns the pause between two tasks on one worker.
func GetQueueBatchIntervalSecond() int {
	return getInt(queueBatchIntervalSecond, 1)
}

// GetQueueStuckMinutes returns the age after which a processing task is considered stuck.
func GetQueueStuckMinutes() int {
	return getInt(queueStuckMinutes, 10)
}

// GetCallbackTimeoutSecond returns the timeout of the analyze completion callback.
func GetCallbackTimeoutSecond() int {
	return getInt(queueCallbackTimeout, 30)
}

// GetVisionAPIURL returns the OpenAI-compatible chat completion endpoint.
func GetVisionAPIURL() string {
	return getString(visionAPIURL, "")
}

// GetVisionModel returns the vision model name.
func GetVisionModel() string {
	return getString(visionModel, "")
}

// GetVisionAPIKey returns the vision API key.
func GetVisionAPIKey() string {
	return getFromFile(visionSecretPath, "api_key")
}

// GetVisionTimeoutSecond returns the vision request timeout in seconds.
func GetVisionTimeoutSecond() int {
	return getInt(visionTimeoutSecond, 60)
}

// GetVisionMaxImageSizeKB returns the size threshold above which images are recompressed.
func GetVisionMaxImageSizeKB() int {
	return getInt(visionMaxImageSizeKB, 2048)
}

// GetVisionAllowedExtensions returns the extensions accepted by the vision model.
func GetVisionAllowedExtensions() []string {
	if exts := getStrings(visionAllowedExtensions); len(exts) > 0 {
		return exts
	}
	return []string{"jpg", "jpeg", "png", "webp", "gif"}
}

// IsVisionConvertGif returns whether GIF images are converted instead of skipped.
func IsVisionConvertGif() bool {
	return getBool(visionConvertGif, true)
}

// GetVisionPromptsFile returns the path of the category prompt YAML file, may be empty.
func GetVisionPromptsFile() string {
	return getString(visionPromptsFile, "")
}

// GetEmbeddingMode returns the embedding mode: api or local.
func GetEmbeddingMode() string {
	return getString(embeddingMode, "api")
}

// GetEmbeddingAPIURL returns the OpenAI-compatible embeddings endpoint.
func GetEmbeddingAPIURL() string {
	return getString(embeddingAPIURL, "")
}

// GetEmbeddingModel returns the embedding model name.
func GetEmbeddingModel() string {
	return getString(embeddingModel, "")
}

// GetEmbeddingAPIKey returns the embedding API key.
func GetEmbeddingAPIKey() string {
	return getFromFile(embeddingSecretPath, "api_key")
}

// GetEmbeddingLocalURL returns the self-hosted embedding server URL.
func GetEmbeddingLocalURL() string {
	return getString(embeddingLocalURL, "")
}

// GetEmbeddingDimensions returns the configured vector dimension.
func GetEmbeddingDimensions() int {
	return getInt(embeddingDimensions, 1024)
}

// GetEmbeddingTimeoutSecond returns the embedding request timeout in seconds.
func GetEmbeddingTimeoutSecond() int {
	return getInt(embeddingTimeoutSecond, 30)
}

// GetSearchVectorWeight returns the hybrid-score weight of the vector similarity.
func GetSearchVectorWeight() float64 {
	return getFloat(searchVectorWeight, 0.7)
}

// GetSearchTagWeight returns the hybrid-score weight of the tag match.
func GetSearchTagWeight() float64 {
	return getFloat(searchTagWeight, 0.3)
}

// GetSearchScoreThreshold returns the vector-score cutoff for hybrid candidates.
func GetSearchScoreThreshold() float64 {
	return getFloat(searchScoreThreshold, 0.5)
}

// GetSearchDefaultLimit returns the default page size of search results.
func GetSearchDefaultLimit() int {
	return getInt(searchDefaultLimit, 20)
}

// GetUserTokenExpire returns the user token expiration time in seconds.
func GetUserTokenExpire() int {
	return getInt(userTokenExpireSecond, -1)
}

// IsUserTokenRequired returns whether user token is required for API access.
func IsUserTokenRequired() bool {
	return getBool(userTokenRequired, true)
}

// IsRegisterAllowed returns whether self-service registration is open.
func IsRegisterAllowed() bool {
	return getBool(userAllowRegister, false)
}

// IsNotificationEnable returns whether notifications are enabled.
func IsNotificationEnable() bool {
	return getBool(notificationEnable, true)
}

// GetNotificationConfig returns the notification channel configuration.
func GetNotificationConfig() string {
	return getFromFile(notificationSecretPath, "config")
}

// GetSystemHost returns the host of the system. e.g. iris.example.amd.com
func GetSystemHost() string {
	subDomainConfig := getString(subDomain, "")
	domainConfig := getString(domain, "")
	if subDomainConfig == "" || domainConfig == "" {
		return ""
	}
	return subDomainConfig + "." + domainConfig
}

// IsTracingEnable returns whether OpenTelemetry tracing is enabled.
func IsTracingEnable() bool {
	return getBool(tracingEnable, false)
}

// GetTracingMode returns the tracing mode: "all" or "error_only".
func GetTracingMode() string {
	return getString(tracingMode, "error_only")
}

// GetTracingSamplingRatio returns the sampling ratio for trace export (0.0 to 1.0).
func GetTracingSamplingRatio() float64 {
	return getFloat(tracingSamplingRatio, 1.0)
}

// GetTracingOtlpEndpoint returns the OTLP exporter endpoint URL.
func GetTracingOtlpEndpoint() string {
	return getString(tracingOtlpEndpoint, "")
}

// IsAuditEnable returns whether write operations are recorded to the audit log.
func IsAuditEnable() bool {
	return getBool(auditEnable, true)
}

// GetAuditBufferSize returns the capacity of the audit buffer channel.
func GetAuditBufferSize() int {
	return getInt(auditBufferSize, 1000)
}

// GetAuditBatchSize returns the number of audit rows written per batch.
func GetAuditBatchSize() int {
	return getInt(auditBatchSize, 50)
}
