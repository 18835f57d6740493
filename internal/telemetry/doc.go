// Package telemetry 封装 OpenTelemetry SDK 初始化，为 fluxgen 提供
// TracerProvider、MeterProvider 以及 StartSpan/EndSpan 辅助函数。
// 遥测禁用时使用全局 noop 实现，不连接任何外部服务。
package telemetry
