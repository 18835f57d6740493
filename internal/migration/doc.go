// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 migration 管理历史记录数据库（history_slots 表）的 Schema 版本，
支持 PostgreSQL、MySQL 与 SQLite，基于 golang-migrate 实现。

# 概述

各方言的 SQL 迁移文件通过 embed.FS 内嵌在二进制中。迁移器通过
database.Open 建立连接，与历史存储使用同一套驱动，因此 SQLite
迁移同样不需要 cgo。serve 启动时可按 database.auto_migrate 自动执行
Up，也可以通过 `fluxgen migrate` 子命令手动管理。

# 核心类型

  - Migrator：Up/Down/DownAll/Steps/Goto/Force/Version/Status/Info/Close
  - DefaultMigrator：封装 golang-migrate 实例与独立的连接池
  - CLI：格式化输出的终端操作
*/
package migration
