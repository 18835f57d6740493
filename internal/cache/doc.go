// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 cache 提供基于 Redis 的缓存管理能力，支持连接池、健康检查、
键前缀与 JSON 序列化。

# 概述

本包封装 go-redis 客户端。在 fluxgen 中有两个使用方：
history.RedisSlot 把整份历史 JSON 存在一个永不过期的键里，
translate.RedisCache 以 TTL 缓存远程翻译结果。

# 核心类型

  - Manager：缓存管理器，提供 Get/Set/Delete/Exists。
  - Config：地址、密码、键前缀、默认 TTL、连接池与健康检查间隔。
  - Stats：键数量与命中统计。

# 错误语义

  - ErrCacheMiss：键不存在，用 IsCacheMiss 判断。
  - ErrClosed：Manager 已关闭。
*/
package cache
