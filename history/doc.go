// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 history 提供有界、最新优先的生成历史记录。

整个历史以一个 JSON 数组保存在单个 Slot 中（默认键 flux-ai-history）。
Store 在头部插入新记录，超过容量（默认 MaxHistory = 100）时丢弃最早
插入的记录。存储不可读或内容损坏时按空列表处理并记录日志；Add 的写入
失败只记录日志，不向调用方返回错误。

# Slot 实现

  - MemorySlot：进程内存
  - FileSlot：单个文件，临时文件 + rename 原子替换
  - RedisSlot：internal/cache 管理器，永不过期
  - GormSlot：history_slots 表，每个键一行（sqlite / postgres / mysql）
  - MongoSlot：每个键一个文档

NewSlot 按 Config.Type 选择实现。
*/
package history
