// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 database 提供基于 GORM 的连接打开与连接池管理，供历史记录的
数据库存储槽使用。

# 驱动

Open 按驱动名选择方言：postgres、mysql 与 sqlite（glebarez 纯 Go 实现，
无需 cgo）。SQLite 连接数固定为 1。

# 核心类型

  - PoolManager：持有 GORM 实例与底层 sql.DB，提供 Ping、GetStats、Close。
  - PoolConfig：空闲/最大连接数、生命周期与健康检查间隔。
  - TransactionFunc：事务回调。

WithTransactionRetry 借助 internal/retry 在死锁、序列化失败、
SQLite 忙等场景下指数退避重试。
*/
package database
