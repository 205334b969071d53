/*
 * Copyright (C) 2025-2025, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package config

const (
	// global
	globalPrefix = "global."
	domain       = globalPrefix + "domain"
	subDomain    = globalPrefix + "sub_domain"

	// crypto
	cryptoPrefix     = "crypto."
	cryptoEnable     = cryptoPrefix + "enable"
	cryptoSecretPath = cryptoPrefix + "secret_path"

	// server
	serverPrefix   = "server."
	serverPort     = serverPrefix + "port"
	serverBaseURL  = serverPrefix + "base_url"
	uploadMaxMB    = serverPrefix + "upload_max_mb"
	archiveMaxFile = serverPrefix + "archive_max_entries"

	// health_check
	healthCheckPrefix = "health_check."
	healthCheckEnable = healthCheckPrefix + "enable"
	healthCheckPort   = healthCheckPrefix + "port"

	// db
	dbPrefix               = "db."
	dbSecretPath           = dbPrefix + "secret_path"
	dbSslMode              = dbPrefix + "ssl_mode"
	dbMaxOpenConns         = dbPrefix + "max_open_conns"
	dbMaxIdleConns         = dbPrefix + "max_idle_conns"
	dbMaxLifetime          = dbPrefix + "max_life_time_second"
	dbMaxIdleTimeSecond    = dbPrefix + "max_idle_time_second"
	dbConnectTimeoutSecond = dbPrefix + "connect_timeout_second"
	dbRequestTimeoutSecond = dbPrefix + "request_timeout_second"

	// storage
	storagePrefix                  = "storage."
	storageLocalRoot               = storagePrefix + "local_root"
	storagePathPrefix              = storagePrefix + "path_prefix"
	storageSyncBatchSize           = storagePrefix + "sync_batch_size"
	storageBackupSchedule          = storagePrefix + "backup_schedule"
	storageHealthCheckCron         = storagePrefix + "health_check_cron"
	storageAutoMirrorCron          = storagePrefix + "auto_mirror_cron"
	storageTaskBatchConcurrency    = storagePrefix + "task_batch_concurrency"
	storageTaskItemDelayMillis     = storagePrefix + "task_item_delay_ms"
	storageTaskFailedItemsCapacity = storagePrefix + "task_failed_items_cap"

	// image
	imagePrefix      = "image."
	imageAutoAnalyze = imagePrefix + "auto_analyze"
	imageURLPriority = imagePrefix + "url_priority"

	// queue
	queuePrefix              = "queue."
	queueEnable              = queuePrefix + "enable"
	queueMaxWorkers          = queuePrefix + "max_workers"
	queueBatchIntervalSecond = queuePrefix + "batch_interval_second"
	queueStuckMinutes        = queuePrefix + "stuck_minutes"
	queueCallbackTimeout     = queuePrefix + "callback_timeout_second"

	// vision
	visionPrefix            = "vision."
	visionAPIURL            = visionPrefix + "api_url"
	visionModel             = visionPrefix + "model"
	visionSecretPath        = visionPrefix + "secret_path"
	visionTimeoutSecond     = visionPrefix + "timeout_second"
	visionMaxImageSizeKB    = visionPrefix + "max_image_size_kb"
	visionAllowedExtensions = visionPrefix + "allowed_extensions"
	visionConvertGif        = visionPrefix + "convert_gif"
	visionPromptsFile       = visionPrefix + "prompts_file"

	// embedding
	embeddingPrefix        = "embedding."
	embeddingMode          = embeddingPrefix + "mode"
	embeddingAPIURL        = embeddingPrefix + "api_url"
	embeddingModel         = embeddingPrefix + "model"
	embeddingSecretPath    = embeddingPrefix + "secret_path"
	embeddingLocalURL      = embeddingPrefix + "local_url"
	embeddingDimensions    = embeddingPrefix + "dimensions"
	embeddingTimeoutSecond = embeddingPrefix + "timeout_second"

	// search
	searchPrefix         = "search."
	searchVectorWeight   = searchPrefix + "vector_weight"
	searchTagWeight      = searchPrefix + "tag_weight"
	searchScoreThreshold = searchPrefix + "score_threshold"
	searchDefaultLimit   = searchPrefix + "default_limit"

	// user
	userPrefix            = "user."
	userTokenRequired     = userPrefix + "token_required"
	userTokenExpireSecond = userPrefix + "token_expire"
	userAllowRegister     = userPrefix + "allow_register"

	// notification
	notificationPrefix     = "notification."
	notificationEnable     = notificationPrefix + "enable"
	notificationSecretPath = notificationPrefix + "secret_path"

	// tracing
	tracingPrefix        = "tracing."
	tracingEnable        = tracingPrefix + "enable"
	tracingMode          = tracingPrefix + "mode"
	tracingSamplingRatio = tracingPrefix + "sampling_ratio"
	tracingOtlpEndpoint  = tracingPrefix + "otlp_endpoint"

	// audit
	auditPrefix     = "audit."
	auditEnable     = auditPrefix + "enable"
	auditBufferSize = auditPrefix + "buffer_size"
	auditBatchSize  = auditPrefix + "batch_size"
)
