// Package tlsutil 为上游图像服务、翻译服务与 Redis 连接提供统一的 TLS 配置，
// 最低 TLS 1.2，仅允许 AEAD 密码套件。
package tlsutil
