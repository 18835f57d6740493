// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

/*
Package main 提供 fluxgen 的命令行与 HTTP 服务入口。

# 概述

cmd/fluxgen 把配置、日志、指标、追踪与生成流水线装配在一起，
既可以作为 HTTP API 服务运行，也可以直接在命令行生成图像、管理历史记录。

# 子命令

  - serve      启动 HTTP API（以及独立端口的 /metrics）
  - generate   生成图像并写入本地目录
  - history    list / stats / export / import / delete / clear
  - styles     列出风格、模型、尺寸与质量模式
  - migrate    历史记录表迁移：up / down / steps / goto / force / status / version / info
  - health     请求运行中服务的 /health
  - version    打印构建信息

# 核心类型

  - App：按配置装配的组件集合，serve 与 CLI 共用
  - Middleware：HTTP 中间件函数签名 func(http.Handler) http.Handler

# 主要能力

  - 中间件链：Recovery、RequestID、OTelTracing、SecurityHeaders、
    RequestLogger、Metrics、CORS、RateLimiter（基于 IP）、APIKeyAuth
  - 配置文件变更时热更新日志级别
  - 优雅关闭：信号监听后依次关闭 HTTP、Metrics 与外部连接
  - 构建注入：Version、BuildTime、GitCommit 通过 ldflags 设置
*/
package main
