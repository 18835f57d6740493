// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

/*
Package types 提供 fluxgen 的全局共享类型定义。

# 概述

types 是最底层的公共包，不依赖任何内部包，为 generation、history、
translate、api 等上层模块提供统一的错误契约与 context 传播工具。

# 核心类型

  - Error / ErrorCode：结构化错误体系，含 HTTP 状态码、Retryable、Provider 标记
  - ValidationError：ErrInvalidRequest，网络调用之前返回
  - UpstreamError：ErrUpstreamError / ErrUpstreamTimeout，整批生成失败
  - TranslationError：ErrTranslationFailed，由翻译组件本地恢复
  - StorageError：ErrStorageFailed，由历史存储本地恢复

# 主要能力

  - Context 传播：WithTraceID / WithRequestID / WithClientIP
  - 错误工具链：AsError / IsErrorCode / IsRetryable / GetErrorCode
  - 常用错误构造：NewValidationError / NewUpstreamError / NewTimeoutError
*/
package types
