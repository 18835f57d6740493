// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

/*
Package handlers 提供 fluxgen HTTP API 的请求处理器实现。

# 概述

handlers 包实现图像生成、历史记录、目录查询、图像读取与健康检查端点。
所有 Handler 均遵循标准 net/http 接口，依赖以小接口注入，便于测试替换。

# 核心类型

  - GenerateHandler：POST /api/v1/generate，尺寸预设展开后交给流水线
  - HistoryHandler：历史列表、删除、清空、导入导出与统计
  - CatalogHandler：风格、模型、尺寸与质量模式目录
  - MediaHandler：按 media:// 句柄返回图像字节
  - HealthHandler：/health、/healthz 与 /version
  - Response：统一 JSON 响应结构（success + data + error + timestamp）
  - ResponseWriter：包装 http.ResponseWriter 以捕获状态码与响应大小

# 错误处理

WriteError 把 types.Error 映射为 HTTP 状态码；其他错误一律按
INTERNAL_ERROR 返回，不向客户端暴露原始信息。
*/
package handlers
