// Package config 提供 fluxgen 的配置管理。
//
// 配置按 默认值 → YAML 文件 → 环境变量（FLUXGEN_ 前缀）的顺序叠加，
// 各组件的配置结构（generation.Config、history.Config、cache.Config 等）
// 直接嵌入，避免重复定义。
package config
