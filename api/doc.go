// Package api documents the fluxgen HTTP API. Handlers live in api/handlers;
// routing and middleware are assembled in cmd/fluxgen.
//
// # API Overview
//
// fluxgen exposes a small JSON API for:
//   - Text-to-image generation through the Pollinations Flux backend
//   - The bounded generation history (list, delete, export, import, stats)
//   - The style, model, size and quality-mode catalog
//   - Stored image payloads referenced by media:// handles
//   - Health checks and Prometheus metrics
//
// # Authentication
//
// When server.api_keys is configured, every /api/v1 endpoint requires the
// X-API-Key header (or Authorization: Bearer <key>):
//
//	X-API-Key: your-api-key
//
// Health, version and metrics endpoints are never authenticated.
//
// # Base URL
//
// The default base URL for the API is:
//
//	http://localhost:8080
//
// # Endpoints
//
//	POST   /api/v1/generate                 生成图像（可选中文提示词翻译）
//	GET    /api/v1/history                  历史记录，最新在前
//	DELETE /api/v1/history                  清空历史
//	DELETE /api/v1/history/{id}             删除单条
//	GET    /api/v1/history/export           导出 JSON 文件
//	POST   /api/v1/history/import           导入 JSON 数组（替换现有记录）
//	GET    /api/v1/history/stats            数量、大小与最近风格
//	GET    /api/v1/catalog/styles           风格预设，支持 ?category=
//	GET    /api/v1/catalog/models           模型列表
//	GET    /api/v1/catalog/sizes            尺寸预设
//	GET    /api/v1/catalog/quality-modes    质量模式
//	GET    /api/v1/media/{id}               读取图像数据
//	GET    /health, /healthz, /version
//	GET    /metrics
//
// # Response Envelope
//
// Successful responses are wrapped as
//
//	{"success": true, "data": ..., "timestamp": "...", "request_id": "..."}
//
// and failures as
//
//	{"success": false, "error": {"code": "...", "message": "...", "retryable": false}, ...}
//
// Upstream failures keep the provider's HTTP status when it reported one and
// map to 502 otherwise; upstream timeouts map to 504.
package api
