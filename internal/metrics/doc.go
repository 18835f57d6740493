// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 metrics 提供基于 Prometheus 的指标采集。

# 核心类型

  - Collector：按业务域分组持有 Counter、Histogram、Gauge 向量。
    nil Collector 上的 Record 方法为空操作，调用方无需判空。

# 指标分组

  - HTTP：请求数、耗时、响应体大小，状态码归类为 2xx/3xx/4xx/5xx。
  - 生成：generate 调用数与耗时（model/quality/status）、
    返回图像数（model/style）、上游 steps 分布。
  - 翻译：按来源 none/remote/cache/local 计数。
  - 历史记录：操作计数与当前条数。
  - 缓存与数据库：命中/未命中、连接数。

NewCollector 注册到默认 Registry；测试使用 NewCollectorWith 传入独立 Registry。
*/
package metrics
