// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 server 管理 HTTP 服务器的生命周期。

Manager 封装 net/http.Server，负责非阻塞启动、优雅关闭与异步错误传播。
Run 同时运行 API 与 metrics 等多个服务器：ctx 结束（通常来自
signal.NotifyContext）或任一服务器异常退出时，全部服务器在各自的
ShutdownTimeout 内关闭。
*/
package server
